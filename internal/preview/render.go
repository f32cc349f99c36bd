// Package preview renders the featured projects in a terminal.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/naka-gawa/gh-portfolio/internal/domain"
)

type palette struct {
	fg, muted, accent, border lipgloss.Color
}

var palettes = map[domain.Theme]palette{
	domain.ThemeLight: {fg: "#212529", muted: "#6c757d", accent: "#0d6efd", border: "#ced4da"},
	domain.ThemeDark:  {fg: "#f8f9fa", muted: "#adb5bd", accent: "#6ea8fe", border: "#495057"},
}

// Render writes the profile header and one card per project to w.
func Render(w io.Writer, profile domain.Profile, projects []domain.Project, t domain.Theme) error {
	p, ok := palettes[t]
	if !ok {
		p = palettes[domain.ThemeLight]
	}
	r := lipgloss.NewRenderer(w)

	title := r.NewStyle().Bold(true).Foreground(p.accent)
	muted := r.NewStyle().Foreground(p.muted)
	text := r.NewStyle().Foreground(p.fg)
	card := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(0, 1).
		Width(60)

	blocks := []string{title.Render(profile.DisplayName())}
	if profile.Bio != "" {
		blocks = append(blocks, text.Render(profile.Bio))
	}
	blocks = append(blocks, muted.Render(fmt.Sprintf("%s mode", t)))

	for _, project := range projects {
		lines := []string{title.Render(project.Name)}
		if project.Description != nil && *project.Description != "" {
			lines = append(lines, text.Render(*project.Description))
		}
		links := []string{project.HTMLURL}
		if project.Homepage != nil && *project.Homepage != "" {
			links = append(links, *project.Homepage)
		}
		lines = append(lines, muted.Render(strings.Join(links, "  ")))
		if project.Image != nil {
			lines = append(lines, muted.Render("image: "+*project.Image))
		}
		blocks = append(blocks, card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	if len(projects) == 0 {
		blocks = append(blocks, muted.Render("No projects yet."))
	}

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, blocks...))
	return err
}

package usecase

import (
	"strings"

	"github.com/naka-gawa/gh-portfolio/internal/domain"
)

// Normalize converts raw repositories into projects, in the same order, and
// attaches the card image of every entry whose name matches case-insensitively.
// When several entries share a name the last one wins.
func Normalize(repos []domain.RawRepository, images []domain.ImageEntry) []domain.Project {
	if len(repos) == 0 {
		return []domain.Project{}
	}

	projects := make([]domain.Project, len(repos))
	for i, r := range repos {
		projects[i] = domain.Project{
			ID:          r.ID,
			Homepage:    r.Homepage,
			Description: r.Description,
			Name:        r.Name,
			HTMLURL:     r.HTMLURL,
		}
	}

	for _, entry := range images {
		image := entry.Image
		for i := range projects {
			if strings.EqualFold(entry.Name, projects[i].Name) {
				projects[i].Image = &image
			}
		}
	}
	return projects
}

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/naka-gawa/gh-portfolio/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	pageHome        = "home"
	pageAllProjects = "projects"
	pageNotFound    = "notfound"
	pageLoading     = "loading"
	pageError       = "error"
	pageFallback    = "fallback"
)

var pageNames = []string{pageHome, pageAllProjects, pageNotFound, pageLoading, pageError, pageFallback}

var funcs = template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

// pageData is the model of every page template.
type pageData struct {
	Title          string
	Theme          domain.Theme
	Toggle         domain.Theme
	Path           string
	NavLogo        string
	FooterTheme    string
	ShowChrome     bool
	RefreshSeconds int
	Year           int

	Profile  *domain.Profile
	Featured []domain.Project
	Projects []domain.Project
	Summary  domain.Summary
	Message  string
}

type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = t
	}
	return &renderer{pages: pages}, nil
}

// render executes a page into memory so a failing template never leaves a
// half-written response behind.
func (r *renderer) render(page string, data pageData) ([]byte, error) {
	t, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", page, err)
	}
	return buf.Bytes(), nil
}

func pageFor(v View) string {
	switch v {
	case ViewHome:
		return pageHome
	case ViewAllProjects:
		return pageAllProjects
	default:
		return pageNotFound
	}
}

func staticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

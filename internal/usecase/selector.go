package usecase

import (
	"slices"

	"github.com/naka-gawa/gh-portfolio/internal/domain"
)

// DefaultFeaturedCount is how many projects are featured when no allow-list applies.
const DefaultFeaturedCount = 3

// Select derives the featured projects shown on the home view.
//
// A non-empty allow-list keeps the projects whose name is listed, in project
// order. If nothing matches, or there is no allow-list, the first
// DefaultFeaturedCount projects are featured. Select returns nil for an empty
// project list so callers keep their previous selection.
func Select(projects []domain.Project, allow []string) []domain.Project {
	if len(projects) == 0 {
		return nil
	}

	if len(allow) != 0 {
		var featured []domain.Project
		for _, p := range projects {
			if slices.Contains(allow, p.Name) {
				featured = append(featured, p)
			}
		}
		if len(featured) != 0 {
			return featured
		}
	}

	n := min(DefaultFeaturedCount, len(projects))
	return slices.Clone(projects[:n])
}

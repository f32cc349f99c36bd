package usecase

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/gh-portfolio/internal/domain"
)

// Summarize computes the star and language figures of the all-projects view.
func Summarize(repos []domain.RawRepository) domain.Summary {
	summary := domain.Summary{Repositories: len(repos), Languages: []domain.LanguageCount{}}
	if len(repos) == 0 {
		return summary
	}

	stars := make(stats.Float64Data, 0, len(repos))
	languages := make(map[string]int)
	for _, r := range repos {
		stars = append(stars, float64(r.Stars))
		summary.TotalStars += r.Stars
		if r.Language != nil && *r.Language != "" {
			languages[*r.Language]++
		}
	}

	// Both only fail on empty input, which is excluded above.
	mean, _ := stars.Mean()
	median, _ := stars.Median()
	summary.MeanStars, _ = stats.Round(mean, 2)
	summary.MedianStars = median

	for name, count := range languages {
		summary.Languages = append(summary.Languages, domain.LanguageCount{Name: name, Repositories: count})
	}
	sort.Slice(summary.Languages, func(i, j int) bool {
		if summary.Languages[i].Repositories != summary.Languages[j].Repositories {
			return summary.Languages[i].Repositories > summary.Languages[j].Repositories
		}
		return summary.Languages[i].Name < summary.Languages[j].Name
	})
	return summary
}

// Package domain contains the core data structures and domain logic for the application.
package domain

// Summary holds aggregate figures over every repository of the profile.
// It is shown on the all-projects view.
type Summary struct {
	Repositories int             `json:"repositories"`
	TotalStars   int             `json:"total_stars"`
	MeanStars    float64         `json:"mean_stars"`
	MedianStars  float64         `json:"median_stars"`
	Languages    []LanguageCount `json:"languages"`
}

// LanguageCount is the number of repositories whose primary language is Name.
type LanguageCount struct {
	Name         string `json:"name"`
	Repositories int    `json:"repositories"`
}

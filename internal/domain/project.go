package domain

// RawRepository is a single repository record as returned by the GitHub API.
// Its identity is ID, which is owned by GitHub and never modified here.
type RawRepository struct {
	ID          int64   `json:"id"`
	Homepage    *string `json:"homepage"`
	Description *string `json:"description"`
	Name        string  `json:"name"`
	HTMLURL     string  `json:"html_url"`

	// Only used for the profile summary.
	Stars    int     `json:"stargazers_count"`
	Language *string `json:"language"`
}

// ImageEntry associates a display image with a project name.
// Name is matched case-insensitively.
type ImageEntry struct {
	Name  string `json:"name" yaml:"name"`
	Image string `json:"image" yaml:"image"`
}

// Project is a repository merged with its configured card image.
type Project struct {
	ID          int64   `json:"id"`
	Homepage    *string `json:"homepage"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Name        string  `json:"name"`
	HTMLURL     string  `json:"html_url"`
}

// Profile is the subset of the GitHub user record rendered on the page.
type Profile struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio"`
	Blog        string `json:"blog"`
	Location    string `json:"location"`
	HTMLURL     string `json:"html_url"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

// DisplayName falls back to the login when the profile has no name set.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Login
}

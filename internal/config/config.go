// Package config loads the site configuration file and the process environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/naka-gawa/gh-portfolio/internal/domain"
	"github.com/naka-gawa/gh-portfolio/internal/gateway"
)

// Env is the configuration taken from environment variables.
type Env struct {
	GitHubToken string `env:"GITHUB_TOKEN"`
	ConfigPath  string `env:"PORTFOLIO_CONFIG" envDefault:"portfolio.yaml"`
	Addr        string `env:"PORTFOLIO_ADDR" envDefault:":8080"`
	// StatePath is where the terminal preview stores the theme choice.
	StatePath string `env:"PORTFOLIO_STATE"`
}

// LoadEnv loads configuration from environment variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	if e.StatePath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		e.StatePath = filepath.Join(dir, "gh-portfolio", "state.yaml")
	}
	return e, nil
}

// Site is the portfolio configuration file.
type Site struct {
	GitHub GitHub `yaml:"github"`
	// FilteredProjects is the allow-list of featured project names.
	FilteredProjects  []string            `yaml:"filtered_projects"`
	ProjectCardImages []domain.ImageEntry `yaml:"project_card_images"`
	// FooterTheme and NavLogo are passed to the templates as-is.
	FooterTheme string `yaml:"footer_theme"`
	NavLogo     string `yaml:"nav_logo"`
	// Refresh is a cron spec for reloading GitHub data, e.g. "@every 1h".
	Refresh string `yaml:"refresh"`
}

// GitHub selects the account and API endpoint.
type GitHub struct {
	Username  string `yaml:"username"`
	APIURL    string `yaml:"api_url"`
	Sort      string `yaml:"sort"`
	UsePinned bool   `yaml:"use_pinned"`
}

var validSorts = map[string]bool{"created": true, "updated": true, "pushed": true, "full_name": true}

// Default returns a Site with every optional field set.
func Default() *Site {
	return &Site{
		GitHub: GitHub{
			APIURL: gateway.DefaultBaseURL,
			Sort:   "pushed",
		},
		FilteredProjects:  []string{},
		ProjectCardImages: []domain.ImageEntry{},
	}
}

// Load reads and validates the site file at path.
func Load(path string) (*Site, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a site file. Unknown keys are rejected.
func Parse(r io.Reader) (*Site, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	site := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(site); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if site.FilteredProjects == nil {
		site.FilteredProjects = []string{}
	}
	if site.ProjectCardImages == nil {
		site.ProjectCardImages = []domain.ImageEntry{}
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return site, nil
}

// Validate checks required fields.
func (s *Site) Validate() error {
	var errs []error
	if s.GitHub.Username == "" {
		errs = append(errs, errors.New("github.username is required"))
	}
	if !validSorts[s.GitHub.Sort] {
		errs = append(errs, fmt.Errorf("github.sort %q is not one of created, updated, pushed, full_name", s.GitHub.Sort))
	}
	for i, img := range s.ProjectCardImages {
		if img.Name == "" || img.Image == "" {
			errs = append(errs, fmt.Errorf("project_card_images[%d] needs both name and image", i))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

package usecase

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/naka-gawa/gh-portfolio/internal/domain"
)

// Settings are the operator-supplied inputs to the project pipeline.
type Settings struct {
	Images           []domain.ImageEntry
	FilteredProjects []string
}

// Curator keeps the published projects and featured selection consistent with
// their sources. Any change to the repositories or the settings recomputes
// both lists from scratch: normalize, publish, then select from what was published.
type Curator struct {
	mu       sync.Mutex
	store    *Store
	repos    []domain.RawRepository
	pinned   []string
	settings Settings
	logger   *zap.Logger
}

// NewCurator creates a Curator publishing into store.
func NewCurator(store *Store, settings Settings, logger *zap.Logger) *Curator {
	return &Curator{
		store:    store,
		settings: settings,
		logger:   logger,
	}
}

// Refresh recomputes the lists from a new fetch. pinned is the fallback
// allow-list used when no filtered projects are configured. An empty
// repository list publishes nothing; the pinned names are kept for the next
// recomputation.
func (c *Curator) Refresh(repos []domain.RawRepository, pinned []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinned = slices.Clone(pinned)
	if len(repos) == 0 {
		c.logger.Debug("empty repository fetch, keeping published lists")
		return
	}
	c.repos = slices.Clone(repos)
	c.recompute()
}

// Reconfigure recomputes the lists with new settings.
func (c *Curator) Reconfigure(settings Settings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = settings
	c.recompute()
}

// Repositories returns the raw repositories of the last non-empty fetch.
func (c *Curator) Repositories() []domain.RawRepository {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.repos)
}

func (c *Curator) allowList() []string {
	if len(c.settings.FilteredProjects) != 0 {
		return c.settings.FilteredProjects
	}
	return c.pinned
}

func (c *Curator) recompute() {
	projects := Normalize(c.repos, c.settings.Images)
	if c.store.PublishProjects(projects) {
		c.logger.Debug("projects published", zap.Int("count", len(projects)), zap.Uint64("revision", c.store.Revision()))
	}
	featured := Select(c.store.Projects(), c.allowList())
	if c.store.PublishFeatured(featured) {
		c.logger.Debug("featured projects updated", zap.Int("count", len(featured)))
	}
}

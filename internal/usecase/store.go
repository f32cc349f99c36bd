package usecase

import (
	"slices"
	"sync"

	"github.com/naka-gawa/gh-portfolio/internal/domain"
)

// Store holds the published project list and featured selection shared by the
// views. Each list has a single writer; empty publishes are ignored so a
// transient empty fetch never replaces a good list.
type Store struct {
	mu       sync.RWMutex
	projects []domain.Project
	featured []domain.Project
	revision uint64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// PublishProjects replaces the project list. It reports whether anything was published.
func (s *Store) PublishProjects(projects []domain.Project) bool {
	if len(projects) == 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = slices.Clone(projects)
	s.revision++
	return true
}

// PublishFeatured replaces the featured selection. It reports whether anything was published.
func (s *Store) PublishFeatured(featured []domain.Project) bool {
	if len(featured) == 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.featured = slices.Clone(featured)
	return true
}

func (s *Store) Projects() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.projects)
}

func (s *Store) Featured() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.featured)
}

// Revision is incremented on every accepted project publish.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

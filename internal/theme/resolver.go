// Package theme resolves the light/dark display preference from an explicit
// choice, a durably stored choice and the environment, in that order.
package theme

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/naka-gawa/gh-portfolio/internal/domain"
)

// Storage is the durable store for an explicit theme choice.
type Storage interface {
	// Load returns the stored value, which may be empty or unrecognized.
	Load() string
	Save(t domain.Theme) error
}

// Environment reports the preference stated by the surrounding environment,
// such as a browser's prefers-color-scheme or a terminal background.
type Environment interface {
	PrefersDark() bool
	// Subscribe calls fn whenever the environment preference may have changed.
	// The returned function cancels the subscription.
	Subscribe(fn func()) (cancel func())
}

// Resolver owns the active theme of a session.
type Resolver struct {
	storage Storage
	env     Environment
	logger  *zap.Logger

	mu     sync.Mutex
	active domain.Theme

	watchMu sync.Mutex
	cancel  func()
}

// NewResolver creates a Resolver whose active theme is resolved from storage
// and the environment.
func NewResolver(storage Storage, env Environment, logger *zap.Logger) *Resolver {
	r := &Resolver{
		storage: storage,
		env:     env,
		logger:  logger,
	}
	r.active = r.Resolve("")
	return r
}

// Resolve picks the explicit theme if it is recognized, then the stored one,
// then the environment preference. It never fails.
func (r *Resolver) Resolve(explicit string) domain.Theme {
	if t, ok := domain.ParseTheme(explicit); ok {
		return t
	}
	if t, ok := domain.ParseTheme(r.storage.Load()); ok {
		return t
	}
	return r.environmentTheme()
}

func (r *Resolver) environmentTheme() domain.Theme {
	if r.env.PrefersDark() {
		return domain.ThemeDark
	}
	return domain.ThemeLight
}

// Apply makes t the active theme and persists it, overwriting any stored value.
func (r *Resolver) Apply(t domain.Theme) error {
	r.mu.Lock()
	r.active = t
	r.mu.Unlock()
	if err := r.storage.Save(t); err != nil {
		return fmt.Errorf("failed to persist theme %q: %w", t, err)
	}
	r.logger.Debug("theme applied", zap.Stringer("theme", t))
	return nil
}

// Set handles a user's theme request. A recognized explicit value is applied
// and persisted; anything else activates the resolved theme without storing
// it, so the environment keeps control until the user makes a choice.
func (r *Resolver) Set(explicit string) (domain.Theme, error) {
	if t, ok := domain.ParseTheme(explicit); ok {
		return t, r.Apply(t)
	}
	t := r.Resolve("")
	r.activate(t)
	return t, nil
}

func (r *Resolver) activate(t domain.Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = t
}

// Active returns the current theme.
func (r *Resolver) Active() domain.Theme {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Watch follows environment preference changes. Calling it again while a
// subscription is active is a no-op. Changes are ignored once the user has
// stored an explicit choice.
func (r *Resolver) Watch() {
	r.watchMu.Lock()
	defer r.watchMu.Unlock()
	if r.cancel != nil {
		return
	}
	r.cancel = r.env.Subscribe(r.environmentChanged)
}

func (r *Resolver) environmentChanged() {
	if _, ok := domain.ParseTheme(r.storage.Load()); ok {
		return
	}
	t := r.environmentTheme()
	r.activate(t)
	r.logger.Debug("theme follows environment", zap.Stringer("theme", t))
}

// Close cancels the environment subscription, if any.
func (r *Resolver) Close() {
	r.watchMu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.watchMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

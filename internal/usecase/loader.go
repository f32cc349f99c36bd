// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/gh-portfolio/internal/domain"
	"github.com/naka-gawa/gh-portfolio/internal/gateway"
)

// Phase is the state of the latest fetch attempt.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "loading"
	}
}

// Result is a snapshot of the latest fetch attempt. Profile and Summary are
// set when Phase is PhaseReady, Err when it is PhaseFailed.
type Result struct {
	Phase   Phase
	Profile *domain.Profile
	Summary domain.Summary
	Err     error
}

// LoaderOptions selects whose portfolio is loaded.
type LoaderOptions struct {
	User string
	// UsePinned fetches the pinned repositories as the fallback allow-list.
	UsePinned bool
}

// Loader is the use case for loading a portfolio.
// It orchestrates the fetching of the profile and repositories and feeds the Curator.
type Loader struct {
	fetcher gateway.Fetcher
	curator *Curator
	opts    LoaderOptions
	logger  *zap.Logger

	loadMu sync.Mutex
	mu     sync.RWMutex
	result Result
}

// NewLoader creates a new Loader instance. Its initial state is PhaseLoading.
func NewLoader(fetcher gateway.Fetcher, curator *Curator, opts LoaderOptions, logger *zap.Logger) *Loader {
	return &Loader{
		fetcher: fetcher,
		curator: curator,
		opts:    opts,
		logger:  logger,
		result:  Result{Phase: PhaseLoading},
	}
}

// State returns the current fetch state.
func (l *Loader) State() Result {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.result
}

func (l *Loader) setState(r Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.result = r
}

// Load performs a fetch attempt and returns its outcome.
// The state is PhaseLoading until every request has completed. Only a
// profile failure fails the attempt; repository and pinned-item failures are
// logged and leave the previously published projects untouched.
func (l *Loader) Load(ctx context.Context) Result {
	l.loadMu.Lock()
	defer l.loadMu.Unlock()

	l.setState(Result{Phase: PhaseLoading})
	l.logger.Info("loading portfolio", zap.String("user", l.opts.User))

	var profile *domain.Profile
	var repos []domain.RawRepository
	var pinned []string

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		profile, err = l.fetcher.FetchProfile(egCtx, l.opts.User)
		return err
	})

	eg.Go(func() error {
		var err error
		repos, err = l.fetcher.FetchRepositories(egCtx, l.opts.User)
		if err != nil {
			l.logger.Warn("failed to fetch repositories", zap.Error(err))
		}
		return nil
	})

	if l.opts.UsePinned {
		eg.Go(func() error {
			var err error
			pinned, err = l.fetcher.FetchPinned(egCtx, l.opts.User)
			if err != nil {
				l.logger.Warn("failed to fetch pinned repositories", zap.Error(err))
			}
			return nil
		})
	}

	err := eg.Wait()
	l.curator.Refresh(repos, pinned)
	if err != nil {
		l.logger.Error("failed to load portfolio", zap.Error(err))
		result := Result{Phase: PhaseFailed, Err: err}
		l.setState(result)
		return result
	}

	result := Result{
		Phase:   PhaseReady,
		Profile: profile,
		Summary: Summarize(l.curator.Repositories()),
	}
	l.setState(result)
	l.logger.Info("portfolio loaded", zap.Int("repositories", result.Summary.Repositories))
	return result
}

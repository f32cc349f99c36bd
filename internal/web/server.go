// Package web serves the portfolio pages.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/naka-gawa/gh-portfolio/internal/domain"
	"github.com/naka-gawa/gh-portfolio/internal/gateway"
	"github.com/naka-gawa/gh-portfolio/internal/theme"
	"github.com/naka-gawa/gh-portfolio/internal/usecase"
)

// StateSource reports the latest fetch attempt.
type StateSource interface {
	State() usecase.Result
}

// ProjectSource provides the published project lists.
type ProjectSource interface {
	Projects() []domain.Project
	Featured() []domain.Project
}

// Appearance is display configuration passed to the templates unmodified.
type Appearance struct {
	FooterTheme string
	NavLogo     string
}

// Server handles HTTP requests
type Server struct {
	state      StateSource
	projects   ProjectSource
	configFile string
	renderer   *renderer
	logger     *zap.Logger
	now        func() time.Time

	mu         sync.RWMutex
	appearance Appearance
}

// NewServer creates a new portfolio server. configFile is named in the
// guidance shown when GitHub cannot be reached.
func NewServer(state StateSource, projects ProjectSource, configFile string, appearance Appearance, logger *zap.Logger) (*Server, error) {
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &Server{
		state:      state,
		projects:   projects,
		configFile: configFile,
		renderer:   r,
		logger:     logger,
		now:        time.Now,
		appearance: appearance,
	}, nil
}

// SetAppearance replaces the display configuration, e.g. after a config reload.
func (s *Server) SetAppearance(a Appearance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appearance = a
}

func (s *Server) currentAppearance() Appearance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appearance
}

// Router returns the HTTP router
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(s.recoverer)

	r.Get("/healthz", s.healthCheck)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFiles()))))
	r.Get("/theme", s.setTheme)

	r.Get("/", s.page)
	r.Get("/*", s.page)
	r.NotFound(s.page)

	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, s.state.State().Phase)
}

// resolveTheme picks the visitor's theme from their cookie and browser hint.
func (s *Server) resolveTheme(w http.ResponseWriter, r *http.Request) *theme.Resolver {
	theme.RequestHints(w)
	return theme.NewResolver(theme.NewCookieStorage(w, r), theme.NewClientHints(r), s.logger)
}

func (s *Server) baseData(t domain.Theme, path string) pageData {
	a := s.currentAppearance()
	return pageData{
		Title:       "Portfolio",
		Theme:       t,
		Toggle:      t.Toggle(),
		Path:        path,
		NavLogo:     a.NavLogo,
		FooterTheme: a.FooterTheme,
		Year:        s.now().Year(),
	}
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	active := s.resolveTheme(w, r).Active()
	data := s.baseData(active, r.URL.Path)
	state := s.state.State()

	switch state.Phase {
	case usecase.PhaseLoading:
		data.RefreshSeconds = 2
		w.Header().Set("Retry-After", "2")
		s.write(w, http.StatusServiceUnavailable, pageLoading, data)
		return
	case usecase.PhaseFailed:
		data.Message = s.guidance(state.Err)
		s.write(w, http.StatusBadGateway, pageError, data)
		return
	}

	location := (&url.URL{Path: r.URL.Path, Fragment: r.URL.Query().Get("section")}).String()
	route := Navigate(location)
	if route.Redirect != "" {
		http.Redirect(w, r, route.Redirect, http.StatusFound)
		return
	}
	if route.Anchor != "" {
		// The browser scrolls to the fragment itself.
		http.Redirect(w, r, (&url.URL{Path: r.URL.Path, Fragment: route.Anchor}).String(), http.StatusSeeOther)
		return
	}

	s.logger.Debug("rendering view", zap.Stringer("view", route.View), zap.String("path", r.URL.Path))
	data.ShowChrome = true
	data.Profile = state.Profile
	if data.Profile == nil {
		data.Profile = &domain.Profile{}
	}
	data.Title = data.Profile.DisplayName()
	status := http.StatusOK
	switch route.View {
	case ViewHome:
		data.Featured = s.projects.Featured()
	case ViewAllProjects:
		data.Title += " | All Projects"
		data.Projects = s.projects.Projects()
		data.Summary = state.Summary
	default:
		data.Title += " | Not Found"
		status = http.StatusNotFound
	}
	s.write(w, status, pageFor(route.View), data)
}

func (s *Server) guidance(err error) string {
	var fetchErr *gateway.FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Guidance(s.configFile)
	}
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// setTheme stores the visitor's explicit choice and sends them back.
func (s *Server) setTheme(w http.ResponseWriter, r *http.Request) {
	if _, err := s.resolveTheme(w, r).Set(r.URL.Query().Get("mode")); err != nil {
		s.logger.Warn("failed to store theme", zap.Error(err))
	}
	http.Redirect(w, r, safeReturn(r.URL.Query().Get("return")), http.StatusSeeOther)
}

// safeReturn only allows local paths so the endpoint is not an open redirect.
func safeReturn(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return HomePath
	}
	return p
}

func (s *Server) write(w http.ResponseWriter, status int, page string, data pageData) {
	body, err := s.renderer.render(page, data)
	if err != nil {
		s.logger.Error("failed to render page", zap.String("page", page), zap.Error(err))
		s.writeFallback(w, data.Theme)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

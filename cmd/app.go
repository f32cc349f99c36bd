package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/naka-gawa/gh-portfolio/internal/config"
	"github.com/naka-gawa/gh-portfolio/internal/gateway"
	"github.com/naka-gawa/gh-portfolio/internal/usecase"
	"github.com/naka-gawa/gh-portfolio/internal/web"
)

// app wires the portfolio pipeline shared by every command.
type app struct {
	env        config.Env
	site       *config.Site
	configPath string
	logger     *zap.Logger
	store      *usecase.Store
	curator    *usecase.Curator
	loader     *usecase.Loader
}

// newLogger builds the logger for a command. Commands writing results to
// stdout stay silent unless --verbose is set.
func newLogger(cmd *cobra.Command, quiet bool) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if quiet && !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

func newApp(cmd *cobra.Command, logger *zap.Logger) (*app, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	path := env.ConfigPath
	if flag, _ := cmd.Flags().GetString("config"); flag != "" {
		path = flag
	}
	site, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	githubGateway, err := gateway.NewGitHubGateway(gateway.Options{
		Token:   env.GitHubToken,
		BaseURL: site.GitHub.APIURL,
		Sort:    site.GitHub.Sort,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}

	usePinned := site.GitHub.UsePinned
	if usePinned && env.GitHubToken == "" {
		logger.Warn("github.use_pinned needs GITHUB_TOKEN, ignoring pinned repositories")
		usePinned = false
	}

	store := usecase.NewStore()
	curator := usecase.NewCurator(store, settingsOf(site), logger)
	loader := usecase.NewLoader(githubGateway, curator, usecase.LoaderOptions{
		User:      site.GitHub.Username,
		UsePinned: usePinned,
	}, logger)

	return &app{
		env:        env,
		site:       site,
		configPath: path,
		logger:     logger,
		store:      store,
		curator:    curator,
		loader:     loader,
	}, nil
}

func settingsOf(site *config.Site) usecase.Settings {
	return usecase.Settings{
		Images:           site.ProjectCardImages,
		FilteredProjects: site.FilteredProjects,
	}
}

func appearanceOf(site *config.Site) web.Appearance {
	return web.Appearance{
		FooterTheme: site.FooterTheme,
		NavLogo:     site.NavLogo,
	}
}

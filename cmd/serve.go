package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naka-gawa/gh-portfolio/internal/config"
	"github.com/naka-gawa/gh-portfolio/internal/scheduler"
	"github.com/naka-gawa/gh-portfolio/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the portfolio website",
	Long: `Serves the portfolio website. GitHub data is loaded in the background while
visitors see a loading page, refreshed on the configured schedule, and the site
file is reloaded whenever it changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger, err := newLogger(cmd, false)
		if err != nil {
			return err
		}
		defer logger.Sync()

		a, err := newApp(cmd, logger)
		if err != nil {
			return err
		}
		addr := a.env.Addr
		if flag, _ := cmd.Flags().GetString("addr"); flag != "" {
			addr = flag
		}

		srv, err := web.NewServer(a.loader, a.store, a.configPath, appearanceOf(a.site), logger)
		if err != nil {
			return err
		}

		go a.loader.Load(ctx)

		refresher := scheduler.NewRefresher(a.loader, a.site.Refresh, logger)
		if err := refresher.Start(ctx); err != nil {
			return err
		}
		defer refresher.Stop()

		watcher, err := config.NewWatcher(a.configPath, func(site *config.Site) {
			if site.GitHub != a.site.GitHub || site.Refresh != a.site.Refresh {
				logger.Warn("github and refresh changes take effect after a restart")
			}
			a.curator.Reconfigure(settingsOf(site))
			srv.SetAppearance(appearanceOf(site))
		}, logger)
		if err != nil {
			logger.Warn("config reloading disabled", zap.Error(err))
		} else {
			go watcher.Run(ctx)
		}

		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (default $PORTFOLIO_ADDR or :8080)")
}

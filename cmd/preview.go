package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naka-gawa/gh-portfolio/internal/config"
	"github.com/naka-gawa/gh-portfolio/internal/domain"
	"github.com/naka-gawa/gh-portfolio/internal/gateway"
	"github.com/naka-gawa/gh-portfolio/internal/preview"
	"github.com/naka-gawa/gh-portfolio/internal/theme"
	"github.com/naka-gawa/gh-portfolio/internal/usecase"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Shows the featured projects in the terminal",
	Long: `Shows the featured projects in the terminal, themed light or dark.
Without --theme the last explicit choice is used, or the terminal background
when there is none. --theme light|dark stores a new choice.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger, err := newLogger(cmd, true)
		if err != nil {
			return err
		}
		defer logger.Sync()

		a, err := newApp(cmd, logger)
		if err != nil {
			return err
		}

		result := a.loader.Load(ctx)
		if result.Phase == usecase.PhaseFailed {
			var fetchErr *gateway.FetchError
			if errors.As(result.Err, &fetchErr) {
				return errors.New(fetchErr.Guidance(a.configPath))
			}
			return fmt.Errorf("failed to load portfolio: %w", result.Err)
		}
		profile := domain.Profile{}
		if result.Profile != nil {
			profile = *result.Profile
		}

		out := cmd.OutOrStdout()
		resolver := theme.NewResolver(theme.NewFileStorage(a.env.StatePath), theme.NewTerminal(os.Stdout, 2*time.Second), logger)
		if choice, _ := cmd.Flags().GetString("theme"); choice != "" {
			if _, ok := domain.ParseTheme(choice); !ok {
				return fmt.Errorf("unknown theme %q, use light or dark", choice)
			}
			if _, err := resolver.Set(choice); err != nil {
				return err
			}
		}
		if err := preview.Render(out, profile, a.store.Featured(), resolver.Active()); err != nil {
			return err
		}

		watch, _ := cmd.Flags().GetBool("watch")
		if !watch {
			return nil
		}

		resolver.Watch()
		defer resolver.Close()

		reloaded := make(chan struct{}, 1)
		watcher, err := config.NewWatcher(a.configPath, func(site *config.Site) {
			a.curator.Reconfigure(settingsOf(site))
			select {
			case reloaded <- struct{}{}:
			default:
			}
		}, logger)
		if err != nil {
			return err
		}
		go watcher.Run(ctx)

		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		shown := resolver.Active()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-reloaded:
			case <-ticker.C:
				if resolver.Active() == shown {
					continue
				}
			}
			shown = resolver.Active()
			logger.Debug("re-rendering preview", zap.Stringer("theme", shown))
			fmt.Fprint(out, "\033[H\033[2J")
			if err := preview.Render(out, profile, a.store.Featured(), shown); err != nil {
				return err
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().String("theme", "", "Store and use this theme (light or dark)")
	previewCmd.Flags().BoolP("watch", "w", false, "Re-render when the site file or terminal background changes")
}

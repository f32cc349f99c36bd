package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/gh-portfolio/internal/domain"
	"github.com/naka-gawa/gh-portfolio/internal/gateway"
	"github.com/naka-gawa/gh-portfolio/internal/usecase"
)

// export is the JSON document printed by the projects command.
type export struct {
	Profile  *domain.Profile  `json:"profile"`
	Projects []domain.Project `json:"projects"`
	Featured []domain.Project `json:"featured"`
	Summary  domain.Summary   `json:"summary"`
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Loads the portfolio once and outputs it as JSON",
	Long:  `Loads the profile and repositories, applies card images and the featured selection, and outputs the result in JSON format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd, true)
		if err != nil {
			return err
		}
		defer logger.Sync()

		a, err := newApp(cmd, logger)
		if err != nil {
			return err
		}

		result := a.loader.Load(cmd.Context())
		if result.Phase == usecase.PhaseFailed {
			var fetchErr *gateway.FetchError
			if errors.As(result.Err, &fetchErr) {
				return errors.New(fetchErr.Guidance(a.configPath))
			}
			return fmt.Errorf("failed to load portfolio: %w", result.Err)
		}

		// Marshal the results into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(export{
			Profile:  result.Profile,
			Projects: nonNil(a.store.Projects()),
			Featured: nonNil(a.store.Featured()),
			Summary:  result.Summary,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results to JSON: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	},
}

func nonNil(projects []domain.Project) []domain.Project {
	if projects == nil {
		return []domain.Project{}
	}
	return projects
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

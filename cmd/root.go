// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gh-portfolio",
	Short: "A portfolio website generated from a GitHub profile.",
	Long: `gh-portfolio renders a personal portfolio from a GitHub user's profile and
repositories. Featured projects, card images and appearance are read from a
YAML site file (portfolio.yaml by default).`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the site file (default $PORTFOLIO_CONFIG or portfolio.yaml)")
}

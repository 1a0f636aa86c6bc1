package cli

import (
	"github.com/moneta-app/moneta/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
// Without a subcommand the HTTP server is started.
func NewRootCommand() *cobra.Command {
	var configPath string

	serveCmd := newServeCommand(&configPath)
	rootCmd := &cobra.Command{
		Use:   "moneta",
		Short: "Personal finance tracking server",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         serveCmd.RunE,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to application.yaml")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newMigrateCommand(&configPath))
	rootCmd.AddCommand(newRecurringCommand(&configPath))

	return rootCmd
}

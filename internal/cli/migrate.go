package cli

import (
	"github.com/moneta-app/moneta/internal/config"
	"github.com/moneta-app/moneta/internal/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return database.Migrate(cfg.Database)
		},
	}
}

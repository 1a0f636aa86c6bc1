package cli

import (
	"fmt"

	"github.com/moneta-app/moneta/internal/config"
	"github.com/moneta-app/moneta/internal/database"
	"github.com/moneta-app/moneta/internal/event_bus"
	"github.com/moneta-app/moneta/internal/utils"
	"github.com/moneta-app/moneta/pkg/recurring"
	"github.com/spf13/cobra"
)

func newRecurringCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Recurring expense maintenance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Generate transactions for every due recurring expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			service := recurring.NewService(recurring.NewRepository(db), event_bus.NewEventBus(), &utils.SystemClock{})
			processed, err := service.RunDue(cmd.Context())
			if err != nil {
				return fmt.Errorf("running due recurring expenses: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "processed %d recurring expenses\n", processed)
			return err
		},
	})

	return cmd
}

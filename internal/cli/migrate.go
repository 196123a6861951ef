package cli

import (
	"github.com/spf13/cobra"

	"clubvenue/internal/infrastructure/database"
)

func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return database.RunMigrations(cfg.DatabaseURL)
		},
	}
}

package cli

import (
	"errors"

	pg "pet-health-records/internal/adapters/storage/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.Config.Database.DSN == "" {
				return errors.New("DB_DSN is required")
			}
			db, err := pg.Open(cmd.Context(), app.Config.Database.DSN, pg.PoolOptions{MaxOpenConns: 1, MaxIdleConns: 1})
			if err != nil {
				return err
			}
			defer db.Close()

			if err := pg.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			app.Log.Info("migrations applied", nil)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.Config.Database.DSN == "" {
				return errors.New("DB_DSN is required")
			}
			db, err := pg.Open(cmd.Context(), app.Config.Database.DSN, pg.PoolOptions{MaxOpenConns: 1, MaxIdleConns: 1})
			if err != nil {
				return err
			}
			defer db.Close()
			return pg.Status(cmd.Context(), db)
		},
	})

	return cmd
}

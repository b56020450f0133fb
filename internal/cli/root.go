// Package cli wires the pethealth commands: the API server, schema
// migrations and a few operator and client helpers.
package cli

import (
	"os"

	"pet-health-records/internal/config"
	"pet-health-records/internal/platform/logger"

	"github.com/spf13/cobra"
)

// App is shared by every subcommand. It is filled in PersistentPreRunE.
type App struct {
	Config *config.Config
	Log    logger.Logger
}

func NewRootCommand() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "pethealth",
		Short: "Pet health records API",
		Long:  "Owner-scoped pet records backed by an external identity provider.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			app.Config = cfg
			app.Log = logger.New(logger.Options{
				Level:  logger.ParseLevel(cfg.Log.Level),
				Format: logger.ParseFormat(cfg.Log.Format),
				App:    cfg.Log.App,
				Output: os.Stderr,
			})
			return nil
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCommand(app))
	cmd.AddCommand(newMigrateCommand(app))
	cmd.AddCommand(newTokenCommand(app))
	cmd.AddCommand(newWebhookCommand(app))
	cmd.AddCommand(newPetsCommand(app))

	return cmd
}

package cmd

import (
	"braindumpBackend/app"
	"braindumpBackend/storage"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		brainDumpConfig, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := connectToDatabase(brainDumpConfig)
		if err != nil {
			return err
		}

		if err := storage.Migrate(db, app.Models()...); err != nil {
			return err
		}

		log.Info("Database schema is up to date")
		return nil
	},
}

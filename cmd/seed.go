package cmd

import (
	"braindumpBackend/app"
	"braindumpBackend/storage"
	"braindumpBackend/test"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with demo data",
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

		data, err := test.GenerateTestData(db)
		if err != nil {
			log.Errorf("Failed to generate demo data: %s", err.Error())
			return err
		}

		log.Info("Generated demo data", "users", len(data.Users), "password", test.SeedPassword)
		return nil
	},
}

package cmd

import (
	"braindumpBackend/config"
	"braindumpBackend/storage"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	configFile       string
	useLocalDatabase bool
	developmentMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "braindump",
	Short: "Brain Dump API server",
	Long: `Brain Dump is a backend for shared brain dump lists. Users collect items,
vote on their priority, comment on them and track sub-tasks in checklists.

Running without a subcommand starts the API server.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load environment variables from .env file if present
		_ = godotenv.Load()

		log.SetTimeFormat("[2006-01-02 15:04:05]")
		if developmentMode {
			log.SetReportCaller(true)
			log.SetLevel(log.DebugLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config.yml", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&useLocalDatabase, "sqlite", false, "Use the local SQLite database instead of PostgreSQL")
	rootCmd.PersistentFlags().BoolVarP(&developmentMode, "dev", "d", false, "Enable development mode")

	rootCmd.AddCommand(serveCmd, migrateCmd, recomputeCmd, seedCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.BrainDumpConfig, error) {
	brainDumpConfig, err := config.Load(configFile)
	if err != nil {
		log.Errorf("Failed to load configuration from %s: %s", configFile, err.Error())
		return nil, err
	}
	return brainDumpConfig, nil
}

func connectToDatabase(brainDumpConfig *config.BrainDumpConfig) (*gorm.DB, error) {
	db, err := storage.Connect(brainDumpConfig, useLocalDatabase)
	if err != nil {
		log.Errorf("Failed to connect to database: %s", err.Error())
		return nil, err
	}
	return db, nil
}

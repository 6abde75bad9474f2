package cmd

import (
	"braindumpBackend/app"
	"braindumpBackend/auth"
	"braindumpBackend/storage"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Rebuild the cached vote and comment counters of all items",
	Long: `Recomputes the cached counters of every item from its votes and comments
and reports every item whose cache was out of date.`,
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

		// Recomputing never notifies, so no realtime channel is needed
		brainDumpConfig.Realtime.EnableSocketIo = false

		brainDumpApp, err := app.CreateApp(brainDumpConfig, db, auth.CreateAuthManager(brainDumpConfig))
		if err != nil {
			return err
		}

		drifts, err := brainDumpApp.ItemService.RecomputeCounters(cmd.Context())
		if err != nil {
			return err
		}

		for _, drift := range drifts {
			log.Warn("Corrected item counters",
				"item", drift.ItemId,
				"votes", drift.Fresh.VoteCount,
				"cachedVotes", drift.Cached.VoteCount,
				"score", drift.Fresh.AvgPriority,
				"cachedScore", drift.Cached.AvgPriority,
				"comments", drift.Fresh.CommentCount,
				"cachedComments", drift.Cached.CommentCount,
			)
		}

		log.Info("Recomputed item counters", "corrected", len(drifts))
		return nil
	},
}

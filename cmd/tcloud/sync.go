package main

import (
	"database/sql"
	"fmt"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/transactioncloud/transactioncloud-go/changefeed"
)

var syncOnce bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror the change feed into Postgres, acknowledging as it goes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient()
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("sync requires database_url to be configured")
		}

		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		logger := newLogger()
		store := changefeed.NewStore(db, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}

		poller := changefeed.NewPoller(client, store, logger)
		if syncOnce {
			report, err := poller.RunOnce(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("run %s: fetched %d, stored %d, acked %d\n",
				report.RunID, report.Fetched, report.Stored, report.Acked)
			return nil
		}

		return poller.Run(ctx, cfg.Interval())
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncOnce, "once", false, "drain the feed once and exit")
	rootCmd.AddCommand(syncCmd)
}

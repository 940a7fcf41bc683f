package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shanehull/birthdaybot/internal/archive"
	"github.com/shanehull/birthdaybot/internal/bot"
)

var replayDate string

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Re-deliver an archived payload",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateDelivery(); err != nil {
			return err
		}

		store, err := archive.NewStore(cfg.Archive.Dir, cfg.Archive.Timezone, logger.Named("archive"))
		if err != nil {
			return err
		}

		date := replayDate
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}
		p, err := store.Load(date)
		if err != nil {
			return err
		}

		opts := botOptions(cmd.Context(), cfg, logger)
		opts.Archiver = nil
		opts.Notifier = nil
		if err := bot.New(opts).Replay(cmd.Context(), *p); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Re-delivered %d records from %s\n", len(p.Records), date)
		return nil
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayDate, "date", "", "Archive date (YYYY-MM-DD), default today")
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shanehull/birthdaybot/internal/bot"
	"github.com/shanehull/birthdaybot/internal/notify"
)

var (
	htmlFile    string
	sendPayload bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract birthdays from a saved HTML page and print the payload",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sendPayload {
			if err := cfg.ValidateDelivery(); err != nil {
				return err
			}
		}

		f, err := os.Open(htmlFile)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", htmlFile, err)
		}
		defer f.Close()

		opts := botOptions(cmd.Context(), cfg, logger)
		result, err := bot.New(opts).RunFromHTML(cmd.Context(), f, sendPayload)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result.Payload); err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		if sendPayload {
			notify.ReportRun(cmd.ErrOrStderr(), result.Payload.Records)
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&htmlFile, "file", "f", "", "Saved birthdays page (HTML)")
	extractCmd.Flags().BoolVar(&sendPayload, "deliver", false, "Also POST the payload to the webhook")
	_ = extractCmd.MarkFlagRequired("file")
}

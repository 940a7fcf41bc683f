package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shanehull/birthdaybot/internal/ai"
	"github.com/shanehull/birthdaybot/internal/archive"
	"github.com/shanehull/birthdaybot/internal/bot"
	"github.com/shanehull/birthdaybot/internal/browser"
	"github.com/shanehull/birthdaybot/internal/config"
	"github.com/shanehull/birthdaybot/internal/deliver"
	"github.com/shanehull/birthdaybot/internal/notify"
)

var (
	headful     bool
	withArchive bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Log in, scrape the birthday list and deliver it",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateRun(); err != nil {
			return err
		}
		if headful {
			cfg.Browser.Headless = false
		}
		if withArchive {
			cfg.Archive.Enabled = true
		}

		ctx := cmd.Context()
		session := browser.NewSession(browserConfig(cfg), browser.Target{
			Email:        cfg.Hermess.Email,
			Password:     cfg.Hermess.Password,
			LoginURL:     cfg.Hermess.LoginURL,
			BirthdaysURL: cfg.Hermess.BirthdaysURL,
		}, logger.Named("browser"))

		opts := botOptions(ctx, cfg, logger)
		opts.Source = session

		result, err := bot.New(opts).Run(ctx)
		if err != nil {
			notify.ReportRun(cmd.OutOrStdout(), nil)
			return err
		}
		notify.ReportRun(cmd.OutOrStdout(), result.Payload.Records)
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&headful, "headful", false, "Show the browser window")
	runCmd.Flags().BoolVar(&withArchive, "archive", false, "Archive the delivered payload")
}

func browserConfig(c *config.Config) browser.Config {
	bc := browser.DefaultConfig()
	bc.Bin = c.Browser.Bin
	bc.ControlURL = c.Browser.ControlURL
	bc.Headless = c.Browser.Headless
	if c.Browser.ViewportWidth > 0 {
		bc.ViewportWidth = c.Browser.ViewportWidth
	}
	if c.Browser.ViewportHeight > 0 {
		bc.ViewportHeight = c.Browser.ViewportHeight
	}
	if c.Browser.NavigationTimeout > 0 {
		bc.NavigationTimeout = c.Browser.NavigationTimeout
	}
	bc.SettleDelay = c.Browser.SettleDelay
	return bc
}

// botOptions wires the delivery side shared by run, extract and replay.
func botOptions(ctx context.Context, c *config.Config, logger *zap.Logger) bot.Options {
	opts := bot.Options{
		Deliverer:   deliver.NewClient(c.Webhook.URL, c.Webhook.Timeout, logger.Named("deliver")),
		MetricsPath: c.Metrics.Textfile,
		Logger:      logger,
	}

	if c.Archive.Enabled {
		store, err := archive.NewStore(c.Archive.Dir, c.Archive.Timezone, logger.Named("archive"))
		if err != nil {
			logger.Warn("Archive disabled", zap.Error(err))
		} else {
			opts.Archiver = store
		}
	}

	if c.Email.Enabled() {
		var greeter notify.GreetingSource
		if c.AI.GeminiAPIKey != "" {
			g, err := ai.NewGreeter(ctx, c.AI.GeminiAPIKey, c.AI.Model)
			if err != nil {
				logger.Warn("Greetings disabled", zap.Error(err))
			} else {
				greeter = g
			}
		}

		sender := notify.NewEmailSender(notify.EmailConfig{
			SMTPServer: c.Email.SMTPServer,
			SMTPPort:   c.Email.SMTPPort,
			SMTPUser:   c.Email.SMTPUser,
			SMTPPass:   c.Email.SMTPPass,
			FromEmail:  c.Email.FromEmail,
			ToEmail:    c.Email.ToEmail,
			Enabled:    true,
		}, logger.Named("email"))
		opts.Notifier = notify.NewDigest(notify.NewHTMLEmailRenderer(), sender, greeter, logger.Named("digest"))
	}

	return opts
}

/*
Package bot runs the birthday pipeline end to end: fetch the page, extract and normalize the
records, deduplicate, assemble the payload and deliver it.
*/
package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shanehull/birthdaybot/internal/browser"
	"github.com/shanehull/birthdaybot/internal/deliver"
	"github.com/shanehull/birthdaybot/internal/dom"
	"github.com/shanehull/birthdaybot/internal/extract"
	"github.com/shanehull/birthdaybot/internal/metrics"
	"github.com/shanehull/birthdaybot/internal/normalize"
	"github.com/shanehull/birthdaybot/internal/payload"
	"github.com/shanehull/birthdaybot/internal/types"
)

// Source produces the rendered birthdays page.
type Source interface {
	Fetch(ctx context.Context) (*browser.Page, error)
	Close() error
}

type Deliverer interface {
	Send(ctx context.Context, p types.RunPayload) error
}

type Archiver interface {
	Save(p types.RunPayload, at time.Time) (string, error)
}

type Notifier interface {
	Send(ctx context.Context, runID string, p types.RunPayload) error
}

// Options wires a Bot. Only Deliverer is needed for delivering runs; Source only for Run.
type Options struct {
	Source      Source
	Deliverer   Deliverer
	Archiver    Archiver
	Notifier    Notifier
	Metrics     *metrics.Run
	MetricsPath string
	Logger      *zap.Logger
	Now         func() time.Time
}

type Bot struct {
	source      Source
	deliverer   Deliverer
	archiver    Archiver
	notifier    Notifier
	metrics     *metrics.Run
	metricsPath string
	logger      *zap.Logger
	now         func() time.Time
}

func New(opts Options) *Bot {
	b := &Bot{
		source:      opts.Source,
		deliverer:   opts.Deliverer,
		archiver:    opts.Archiver,
		notifier:    opts.Notifier,
		metrics:     opts.Metrics,
		metricsPath: opts.MetricsPath,
		logger:      opts.Logger,
		now:         opts.Now,
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.metrics == nil {
		b.metrics = metrics.NewRun()
	}
	return b
}

// Run fetches the page through the Source and delivers the extracted payload.
func (b *Bot) Run(ctx context.Context) (*types.RunResult, error) {
	if b.source == nil {
		return nil, errors.New("bot has no page source")
	}

	started := b.now()
	runID := uuid.NewString()
	logger := b.logger.With(zap.String("run_id", runID))
	defer b.finish(logger, started)

	logger.Info("Starting birthday bot")
	defer func() {
		if err := b.source.Close(); err != nil {
			logger.Warn("Failed to close page source", zap.Error(err))
		}
	}()

	page, err := b.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch birthdays page: %w", err)
	}
	logger.Info("Birthdays page loaded", zap.String("title", page.Title), zap.String("url", page.URL))

	return b.process(ctx, logger, runID, started, strings.NewReader(page.HTML), true)
}

// RunFromHTML processes an already captured page. The payload is only delivered when
// send is true.
func (b *Bot) RunFromHTML(ctx context.Context, r io.Reader, send bool) (*types.RunResult, error) {
	started := b.now()
	runID := uuid.NewString()
	logger := b.logger.With(zap.String("run_id", runID))
	defer b.finish(logger, started)

	return b.process(ctx, logger, runID, started, r, send)
}

func (b *Bot) process(ctx context.Context, logger *zap.Logger, runID string, started time.Time, r io.Reader, send bool) (*types.RunResult, error) {
	doc, err := dom.Parse(r)
	if err != nil {
		return nil, err
	}

	diag := extract.Diagnose(doc)
	logger.Debug("Page diagnostics",
		zap.String("title", diag.Title),
		zap.Strings("birthday_mentions", diag.BirthdayMentions),
		zap.Int("forms", diag.Forms),
		zap.Int("tables", diag.Tables),
		zap.Int("data_divs", diag.DataDivs),
		zap.Bool("mentions_birthdays", diag.MentionsBirthdays))
	if !diag.MentionsBirthdays {
		logger.Warn("Page does not mention birthdays")
	}

	dates := normalize.NewDates(func() time.Time { return started })
	ex := extract.NewExtractor(logger, dates)

	res, err := ex.Extract(doc)
	if res != nil {
		b.metrics.ObserveExtraction(res.Stats)
	}
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	unique, dropped := payload.Dedupe(res.Records)
	for _, d := range dropped {
		logger.Info("Duplicate removed", zap.String("name", d.Name), zap.String("phone", d.Phone))
	}
	if len(dropped) > 0 {
		logger.Info("Duplicates removed", zap.Int("count", len(dropped)))
	}
	b.metrics.ObserveDuplicates(len(dropped))

	p := payload.Assemble(unique, started)
	result := &types.RunResult{
		RunID:      runID,
		StartedAt:  started,
		Payload:    p,
		Duplicates: len(dropped),
	}

	if !send {
		return result, nil
	}
	if b.deliverer == nil {
		return nil, errors.New("bot has no deliverer")
	}

	err = b.deliverer.Send(deliver.WithRequestID(ctx, runID), p)
	b.metrics.ObserveDelivery(err, b.now())
	if err != nil {
		return nil, err
	}
	logger.Info("Birthdays delivered", zap.Int("records", p.Metadata.RecordCount))

	b.afterDelivery(ctx, logger, runID, p)
	return result, nil
}

// afterDelivery archives and mails the payload. Failures here never fail the run.
func (b *Bot) afterDelivery(ctx context.Context, logger *zap.Logger, runID string, p types.RunPayload) {
	var g errgroup.Group

	if b.archiver != nil {
		g.Go(func() error {
			if _, err := b.archiver.Save(p, b.now()); err != nil {
				logger.Warn("Archiving payload failed", zap.Error(err))
				return err
			}
			return nil
		})
	}

	if b.notifier != nil {
		g.Go(func() error {
			if err := b.notifier.Send(ctx, runID, p); err != nil {
				logger.Warn("Sending digest failed", zap.Error(err))
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Warn("Post-delivery steps incomplete", zap.Error(err))
	}
}

func (b *Bot) finish(logger *zap.Logger, started time.Time) {
	b.metrics.ObserveDuration(b.now().Sub(started))
	if b.metricsPath == "" {
		return
	}
	if err := b.metrics.WriteTextfile(b.metricsPath); err != nil {
		logger.Warn("Writing metrics failed", zap.Error(err))
	}
}

// Replay re-delivers a previously assembled payload.
func (b *Bot) Replay(ctx context.Context, p types.RunPayload) error {
	if b.deliverer == nil {
		return errors.New("bot has no deliverer")
	}
	runID := uuid.NewString()
	b.logger.Info("Replaying payload", zap.String("run_id", runID), zap.Int("records", len(p.Records)))

	err := b.deliverer.Send(deliver.WithRequestID(ctx, runID), p)
	b.metrics.ObserveDelivery(err, b.now())
	return err
}

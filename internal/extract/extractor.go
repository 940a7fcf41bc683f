/*
Package extract finds the birthday table on a scraped page and turns its rows into
normalized birthday records.
*/
package extract

import (
	"errors"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/shanehull/birthdaybot/internal/normalize"
	"github.com/shanehull/birthdaybot/internal/types"
)

// Normalizer publishes raw name and date tokens.
type Normalizer interface {
	Name(raw string) string
	Date(token string) string
}

// Stats counts what happened to the rows of one extraction.
type Stats struct {
	RowsFound      int
	ShortRows      int
	IncompleteRows int
	Unclassified   int
	DateFallbacks  int
	NameFallbacks  int
	Records        int
}

type Result struct {
	Records []types.BirthdayRecord
	Stats   Stats
	// ContainerTag is the tag name of the selected container.
	ContainerTag string
}

type Extractor struct {
	logger *zap.Logger
	dates  normalize.Dates
}

func NewExtractor(logger *zap.Logger, dates normalize.Dates) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger, dates: dates}
}

// Extract runs locate, tokenize and classify over a parsed page. On ErrNoRows and
// ErrNoRecords the partial Result is still returned for reporting.
func (e *Extractor) Extract(doc *html.Node) (*Result, error) {
	container, err := LocateContainer(doc)
	if err != nil {
		return nil, err
	}

	res := &Result{ContainerTag: container.Data}
	e.logger.Info("Birthday container located", zap.String("tag", container.Data))

	tok := Tokenize(container)
	res.Stats.RowsFound = tok.Found
	res.Stats.ShortRows = len(tok.Short)
	e.logger.Info("Candidate rows found", zap.Int("rows", tok.Found), zap.Int("short", len(tok.Short)))
	for _, i := range tok.Short {
		e.logger.Debug("Row skipped", zap.Int("row", i+1), zap.String("reason", ReasonShortRow))
	}

	if len(tok.Rows) == 0 {
		return res, ErrNoRows
	}

	norm := &loggingNormalizer{dates: e.dates, logger: e.logger, stats: &res.Stats}

	for i, row := range tok.Rows {
		f := Bind(row)
		res.Stats.Unclassified += len(f.Unclassified)
		for _, t := range f.Unclassified {
			e.logger.Debug("Token unclassified", zap.Int("row", i+1), zap.String("token", t))
		}

		if !f.Complete() {
			res.Stats.IncompleteRows++
			e.logger.Debug("Row skipped",
				zap.Int("row", i+1),
				zap.String("reason", ReasonMissingNameOrDate),
				zap.Strings("cells", row))
			continue
		}

		rec := recordFrom(f, norm)
		res.Records = append(res.Records, rec)
		e.logger.Info("Record extracted",
			zap.Int("row", i+1),
			zap.String("name", rec.Name),
			zap.String("birthday", rec.Birthday))
	}

	res.Stats.Records = len(res.Records)
	e.logger.Info("Extraction finished", zap.Int("records", len(res.Records)))

	if len(res.Records) == 0 {
		return res, ErrNoRecords
	}
	return res, nil
}

// NewNormalizer returns the normalizer used by Extract, logging fallbacks to logger.
func NewNormalizer(dates normalize.Dates, logger *zap.Logger) Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &loggingNormalizer{dates: dates, logger: logger, stats: &Stats{}}
}

type loggingNormalizer struct {
	dates  normalize.Dates
	logger *zap.Logger
	stats  *Stats
}

func (n *loggingNormalizer) Name(raw string) string {
	out, err := normalize.Name(raw)
	if err != nil {
		n.stats.NameFallbacks++
		n.logger.Warn("Name normalization failed, keeping raw name", zap.String("name", raw), zap.Error(err))
	}
	return out
}

func (n *loggingNormalizer) Date(token string) string {
	out, err := n.dates.Parse(token)
	if err != nil {
		if errors.Is(err, normalize.ErrInvalidDate) {
			n.stats.DateFallbacks++
		}
		n.logger.Warn("Date conversion failed, keeping raw token", zap.String("token", token), zap.Error(err))
	}
	return out
}

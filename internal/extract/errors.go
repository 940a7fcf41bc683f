package extract

import "errors"

var (
	// ErrContainerNotFound: no element on the page textually matches the birthday keywords.
	ErrContainerNotFound = errors.New("birthday container not found")
	// ErrNoRows: the container held no row with at least three non-empty cells.
	ErrNoRows = errors.New("no usable rows in birthday container")
	// ErrNoRecords: rows were found but none yielded both a name and a date.
	ErrNoRecords = errors.New("no birthday records extracted")
)

// Reasons attached to non-fatal skips in logs and metrics.
const (
	ReasonShortRow          = "short_row"
	ReasonMissingNameOrDate = "missing_name_or_date"
)

package types

import (
	"time"
)

// RawRow is the ordered list of trimmed, non-empty cell texts of one table-like row.
type RawRow []string

type BirthdayRecord struct {
	Name     string `json:"name"`
	Birthday string `json:"birthday"`
	Phone    string `json:"phone"`
	Age      string `json:"age"`
}

type Metadata struct {
	ExtractionTimestamp string `json:"extraction_timestamp"`
	RecordCount         int    `json:"record_count"`
	DateFormat          string `json:"date_format_tag"`
	ProcessingYear      int    `json:"processing_year"`
	Source              string `json:"source_tag"`
	Description         string `json:"description"`
}

type RunPayload struct {
	Metadata Metadata         `json:"metadata"`
	Records  []BirthdayRecord `json:"records"`
}

// RunResult is what a completed run hands back to the CLI.
type RunResult struct {
	RunID      string
	StartedAt  time.Time
	Payload    RunPayload
	Duplicates int
}

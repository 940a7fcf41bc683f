package payload

import (
	"time"

	"github.com/shanehull/birthdaybot/internal/types"
)

const (
	DateFormat  = "YYYY-MM-DD"
	Source      = "HermessApp"
	Description = "Lista de cumpleaños de pacientes extraída automáticamente"
)

// Assemble wraps records with the metadata block. now is the run time; its year is the
// processing year.
func Assemble(records []types.BirthdayRecord, now time.Time) types.RunPayload {
	if records == nil {
		records = []types.BirthdayRecord{}
	}
	return types.RunPayload{
		Metadata: types.Metadata{
			ExtractionTimestamp: now.Format(time.RFC3339),
			RecordCount:         len(records),
			DateFormat:          DateFormat,
			ProcessingYear:      now.Year(),
			Source:              Source,
			Description:         Description,
		},
		Records: records,
	}
}

package payload

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shanehull/birthdaybot/internal/types"
)

func TestDedupe(t *testing.T) {
	a := types.BirthdayRecord{Name: "A", Birthday: "2024-01-01", Phone: "123"}
	b := types.BirthdayRecord{Name: "B", Birthday: "2024-02-02"}

	tests := []struct {
		name        string
		in          []types.BirthdayRecord
		wantUnique  []types.BirthdayRecord
		wantDropped []types.BirthdayRecord
	}{
		{
			name:        "keeps first of each name and phone",
			in:          []types.BirthdayRecord{a, b, a, b},
			wantUnique:  []types.BirthdayRecord{a, b},
			wantDropped: []types.BirthdayRecord{a, b},
		},
		{
			name:       "same name different phone is kept",
			in:         []types.BirthdayRecord{a, {Name: "A", Phone: "456"}, {Name: "A"}},
			wantUnique: []types.BirthdayRecord{a, {Name: "A", Phone: "456"}, {Name: "A"}},
		},
		{
			name:        "birthday does not take part in the key",
			in:          []types.BirthdayRecord{b, {Name: "B", Birthday: "2024-12-12"}},
			wantUnique:  []types.BirthdayRecord{b},
			wantDropped: []types.BirthdayRecord{{Name: "B", Birthday: "2024-12-12"}},
		},
		{
			name:       "empty",
			in:         nil,
			wantUnique: []types.BirthdayRecord{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unique, dropped := Dedupe(tt.in)
			if diff := cmp.Diff(tt.wantUnique, unique); diff != "" {
				t.Errorf("unique mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantDropped, dropped); diff != "" {
				t.Errorf("dropped mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAssemble(t *testing.T) {
	now := time.Date(2024, time.May, 12, 8, 30, 0, 0, time.FixedZone("COT", -5*3600))
	records := []types.BirthdayRecord{
		{Name: "Juan Perez", Birthday: "2024-05-12", Phone: "3001234567", Age: "34"},
		{Name: "Ana Gomez", Birthday: "2024-05-12", Age: "29"},
	}

	p := Assemble(records, now)

	assert.Equal(t, types.Metadata{
		ExtractionTimestamp: "2024-05-12T08:30:00-05:00",
		RecordCount:         2,
		DateFormat:          "YYYY-MM-DD",
		ProcessingYear:      2024,
		Source:              "HermessApp",
		Description:         Description,
	}, p.Metadata)
	assert.Equal(t, records, p.Records)
}

func TestAssembleEncodesEmptyRecords(t *testing.T) {
	p := Assemble(nil, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{}, decoded["records"])

	meta := decoded["metadata"].(map[string]any)
	assert.Equal(t, float64(0), meta["record_count"])
	assert.Equal(t, "YYYY-MM-DD", meta["date_format_tag"])
	assert.Equal(t, float64(2024), meta["processing_year"])
}

package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shanehull/birthdaybot/internal/normalize"
	"github.com/shanehull/birthdaybot/internal/types"
)

func testNormalizer() Normalizer {
	return NewNormalizer(normalize.NewDates(func() time.Time {
		return time.Date(2024, time.May, 12, 8, 0, 0, 0, time.UTC)
	}), nil)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		token string
		want  field
	}{
		{"GARCIA JUAN", fieldName},
		{"Núñez", fieldNone},
		{"Ñañez Ñ", fieldName},
		{"CALLE 5", fieldNone},
		{"12/05", fieldDate},
		{"1/5", fieldDate},
		{"12/05/90", fieldNone},
		{"3001234567", fieldPhone},
		{"300123456", fieldNone},
		{"300-123-4567", fieldNone},
		{"34", fieldAge},
		{"7", fieldAge},
		{"1000", fieldNone},
		{"٣٤", fieldNone},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, kindOf(tt.token), "got %s", kindOf(tt.token))
		})
	}
}

func TestBind(t *testing.T) {
	t.Run("first match binds once", func(t *testing.T) {
		f := Bind(types.RawRow{"PEREZ JUAN", "GOMEZ ANA", "12/05", "01/01", "3001234567", "34", "35"})
		require.True(t, f.Complete())
		assert.Equal(t, "PEREZ JUAN", f.Name())
		assert.Equal(t, "12/05", f.Date())
		assert.Equal(t, "3001234567", f.Phone())
		assert.Equal(t, "34", f.Age())
		assert.Equal(t, []string{"GOMEZ ANA", "01/01", "35"}, f.Unclassified)
	})

	t.Run("order independent", func(t *testing.T) {
		f := Bind(types.RawRow{"34", "12/05", "x", "PEREZ JUAN"})
		require.True(t, f.Complete())
		assert.Equal(t, "PEREZ JUAN", f.Name())
		assert.Equal(t, "12/05", f.Date())
		assert.Equal(t, "34", f.Age())
		assert.Empty(t, f.Phone())
	})

	t.Run("missing date", func(t *testing.T) {
		f := Bind(types.RawRow{"PEREZ JUAN", "3001234567", "34"})
		assert.False(t, f.Complete())
	})
}

func TestClassify(t *testing.T) {
	norm := testNormalizer()

	tests := []struct {
		name string
		row  types.RawRow
		want types.BirthdayRecord
		ok   bool
	}{
		{
			name: "full row",
			row:  types.RawRow{"GARCIA LOPEZ JUAN", "05/03", "3001234567", "34"},
			want: types.BirthdayRecord{Name: "Juan Garcia Lopez", Birthday: "2024-03-05", Phone: "3001234567", Age: "34"},
			ok:   true,
		},
		{
			name: "no phone",
			row:  types.RawRow{"GOMEZ ANA", "01/01", "29"},
			want: types.BirthdayRecord{Name: "Ana Gomez", Birthday: "2024-01-01", Age: "29"},
			ok:   true,
		},
		{
			name: "invalid date kept raw",
			row:  types.RawRow{"GOMEZ ANA", "31/02", "29"},
			want: types.BirthdayRecord{Name: "Ana Gomez", Birthday: "31/02", Age: "29"},
			ok:   true,
		},
		{
			name: "header row",
			row:  types.RawRow{"Nombre", "Fecha", "Edad"},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.row, norm)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

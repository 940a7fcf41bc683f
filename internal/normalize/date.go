package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// Dates expands DD/MM tokens into ISO dates. Every date gets the processing year, never a
// year found in the source, so the patient's real birth year is dropped.
type Dates struct {
	now func() time.Time
}

// NewDates anchors dates to the year reported by now. A nil now uses time.Now.
func NewDates(now func() time.Time) Dates {
	if now == nil {
		now = time.Now
	}
	return Dates{now: now}
}

// Year is the processing year.
func (d Dates) Year() int {
	if d.now == nil {
		return time.Now().Year()
	}
	return d.now().Year()
}

// Parse converts a DD/MM token to YYYY-MM-DD. Tokens without a single '/' separator come back
// unchanged with no error; out-of-range or non-numeric parts return ErrInvalidDate.
func (d Dates) Parse(token string) (string, error) {
	if !strings.Contains(token, "/") {
		return token, nil
	}

	parts := strings.Split(token, "/")
	if len(parts) != 2 {
		return token, nil
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return token, fmt.Errorf("%w: day %q: %v", ErrInvalidDate, parts[0], err)
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return token, fmt.Errorf("%w: month %q: %v", ErrInvalidDate, parts[1], err)
	}

	year := d.Year()
	if month < 1 || month > 12 || day < 1 {
		return token, fmt.Errorf("%w: %02d/%02d", ErrInvalidDate, day, month)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return token, fmt.Errorf("%w: %02d/%02d does not exist in %d", ErrInvalidDate, day, month, year)
	}

	return t.Format(isoDateLayout), nil
}

// Normalize is Parse with the error dropped: invalid tokens pass through as-is.
func (d Dates) Normalize(token string) string {
	out, _ := d.Parse(token)
	return out
}

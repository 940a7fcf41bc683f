package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shanehull/birthdaybot/internal/types"
)

type field int

const (
	fieldNone field = iota
	fieldName
	fieldDate
	fieldPhone
	fieldAge
)

func (f field) String() string {
	switch f {
	case fieldName:
		return "name"
	case fieldDate:
		return "date"
	case fieldPhone:
		return "phone"
	case fieldAge:
		return "age"
	default:
		return "none"
	}
}

// slot holds a value that can be bound at most once.
type slot struct {
	value string
	bound bool
}

func (s *slot) bind(v string) bool {
	if s.bound {
		return false
	}
	s.value, s.bound = v, true
	return true
}

// Fields is the raw classification of one row, before normalization.
type Fields struct {
	name, date, phone, age slot

	// Unclassified holds tokens that matched no rule or whose field was already bound.
	Unclassified []string
}

func (f *Fields) slot(kind field) *slot {
	switch kind {
	case fieldName:
		return &f.name
	case fieldDate:
		return &f.date
	case fieldPhone:
		return &f.phone
	case fieldAge:
		return &f.age
	}
	return nil
}

func (f Fields) Name() string  { return f.name.value }
func (f Fields) Date() string  { return f.date.value }
func (f Fields) Phone() string { return f.phone.value }
func (f Fields) Age() string   { return f.age.value }

// Complete reports whether both name and date were identified.
func (f Fields) Complete() bool {
	return f.name.bound && f.date.bound
}

// kindOf applies the column rules in order. The rules are disjoint, so the first match is
// the only candidate field for the token.
func kindOf(token string) field {
	length := utf8.RuneCountInString(token)
	switch {
	case length > 5 && !hasDigit(token):
		return fieldName
	case strings.Contains(token, "/") && length <= 5:
		return fieldDate
	case isASCIIDigits(token) && length == 10:
		return fieldPhone
	case isASCIIDigits(token) && length >= 1 && length <= 3:
		return fieldAge
	}
	return fieldNone
}

// Bind classifies every token of a row in order. A field binds to the first token that
// matches it and later matches are ignored.
func Bind(row types.RawRow) Fields {
	var f Fields
	for _, token := range row {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		s := f.slot(kindOf(token))
		if s == nil || !s.bind(token) {
			f.Unclassified = append(f.Unclassified, token)
		}
	}
	return f
}

// Classify builds a record from a row, normalizing the name and date. It returns false when
// the row lacks a name or a date.
func Classify(row types.RawRow, norm Normalizer) (types.BirthdayRecord, bool) {
	f := Bind(row)
	if !f.Complete() {
		return types.BirthdayRecord{}, false
	}
	return recordFrom(f, norm), true
}

// recordFrom assumes f is complete; phone and age stay empty when unbound.
func recordFrom(f Fields, norm Normalizer) types.BirthdayRecord {
	return types.BirthdayRecord{
		Name:     norm.Name(f.Name()),
		Birthday: norm.Date(f.Date()),
		Phone:    f.Phone(),
		Age:      f.Age(),
	}
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func isASCIIDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

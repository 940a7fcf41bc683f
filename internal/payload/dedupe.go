/*
Package payload deduplicates extracted birthday records and wraps them with run metadata
for delivery.
*/
package payload

import (
	"github.com/shanehull/birthdaybot/internal/types"
)

type dedupeKey struct {
	name  string
	phone string
}

// Dedupe keeps the first record for every (name, phone) pair, preserving order. Two records
// with the same name and no phone count as duplicates. Dropped records are returned
// separately, in the order they were seen.
func Dedupe(records []types.BirthdayRecord) (unique, dropped []types.BirthdayRecord) {
	seen := make(map[dedupeKey]struct{}, len(records))
	unique = make([]types.BirthdayRecord, 0, len(records))

	for _, r := range records {
		key := dedupeKey{name: r.Name, phone: r.Phone}
		if _, ok := seen[key]; ok {
			dropped = append(dropped, r)
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, r)
	}
	return unique, dropped
}

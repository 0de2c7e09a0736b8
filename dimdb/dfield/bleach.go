package dfield

import (
	"github.com/samber/lo"
)

// Bleach drops every record carrying a forbidden hash.
func Bleach[T NameHashed](records []T, forbidden HashSet) []T {
	if len(forbidden) == 0 {
		return records
	}
	return lo.Filter(records, func(record T, _ int) bool {
		return !lo.SomeBy(record.NameHashes(), func(hash Hash) bool {
			return forbidden.Has(hash.String())
		})
	})
}

package ds

import (
	"cmp"
	"slices"
)

func ShallowCopy[T any](ts []T) []T {
	tsCopy := make([]T, len(ts))
	copy(tsCopy, ts)
	return tsCopy
}

// SortedBy returns a sorted copy of ts, leaving ts untouched. Equal keys keep their order.
func SortedBy[T any, K cmp.Ordered](ts []T, key func(T) K) []T {
	sorted := ShallowCopy(ts)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	})
	return sorted
}

package ds

import (
	"golang.org/x/exp/constraints"
)

// MakeRange returns [start, end) stepping by step. A non-positive step yields nil.
func MakeRange[T constraints.Integer](start, end, step T) []T {
	if step <= 0 || end <= start {
		return nil
	}
	sequence := make([]T, 0, int((end-start+step-1)/step))
	for i := start; i < end; i += step {
		sequence = append(sequence, i)
	}
	return sequence
}

// Package reorder relocates a single element within a sequence, the way a
// drag-and-drop list does when a block is picked up and dropped elsewhere.
package reorder

import (
	"errors"
	"fmt"
)

// NoTarget is the destination index of a drag released outside any drop
// target. Moving to NoTarget leaves the sequence unchanged.
const NoTarget = -1

// ErrInvalidMove is returned when an index falls outside the sequence.
var ErrInvalidMove = errors.New("invalid move")

// Move removes the element at from and reinserts it at index to of the
// resulting sequence, so the moved element ends up at position to.
//
// The input is never modified. The returned slice is always a fresh copy,
// unchanged when to is NoTarget or when either index is out of range.
func Move[T any](seq []T, from, to int) ([]T, error) {
	out := make([]T, len(seq))
	copy(out, seq)

	if to == NoTarget {
		return out, nil
	}
	if from < 0 || from >= len(seq) || to < 0 || to >= len(seq) {
		return out, fmt.Errorf("%w: from=%d to=%d len=%d", ErrInvalidMove, from, to, len(seq))
	}
	if from == to {
		return out, nil
	}

	item := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = item
	return out, nil
}

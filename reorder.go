package casefolio

import (
	"fmt"
	"slices"
)

// Move returns a copy of list where the element at from has been removed and
// reinserted at to. Every element between the two positions shifts by one:
// Move([A B C D], 0, 2) is [B C A D].
func Move[T any](list []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(list) {
		return nil, fmt.Errorf("%w: move from %d in a list of %d", ErrIndexOutOfRange, from, len(list))
	}
	if to < 0 || to >= len(list) {
		return nil, fmt.Errorf("%w: move to %d in a list of %d", ErrIndexOutOfRange, to, len(list))
	}
	out := slices.Clone(list)
	moved := out[from]
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, moved)
	return out, nil
}

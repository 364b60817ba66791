package internal

import (
	"iter"
	"slices"
)

// Permutations returns an iterator over every ordering of values.
// Each yielded slice is a new copy, and may be retained by the caller.
func Permutations[T any](values []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		perm := slices.Clone(values)
		// Heap's algorithm, iterative form.
		count := make([]int, len(perm))

		if !yield(slices.Clone(perm)) {
			return
		}

		for i := 1; i < len(perm); {
			if count[i] < i {
				if i%2 == 0 {
					perm[0], perm[i] = perm[i], perm[0]
				} else {
					perm[count[i]], perm[i] = perm[i], perm[count[i]]
				}
				if !yield(slices.Clone(perm)) {
					return // Stop if the consumer stops
				}
				count[i]++
				i = 1
			} else {
				count[i] = 0
				i++
			}
		}
	}
}

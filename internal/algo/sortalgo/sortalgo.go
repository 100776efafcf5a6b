// Package sortalgo implements the comparator-based sorting algorithms
// used by the orderflow engine. Each algorithm copies its input, sorts
// the copy, and reports execution metrics alongside the result.
//
// The comparator After(a, b) reports whether a should sort after b under
// ascending order (strictly-greater semantics). Every comparator
// invocation is counted.
package sortalgo

import "time"

// Algorithm identifies one of the closed set of sorting algorithms.
type Algorithm string

const (
	Insertion Algorithm = "insertion"
	Selection Algorithm = "selection"
	Quick     Algorithm = "quick"
	Merge     Algorithm = "merge"
)

// Comparator reports whether a should sort after b.
type Comparator[T any] func(a, b T) bool

// Result carries the metrics of one sort execution. Immutable once
// produced.
type Result struct {
	Algorithm       Algorithm     `json:"algorithm"`
	TimeComplexity  string        `json:"time_complexity"`
	SpaceComplexity string        `json:"space_complexity"`
	Duration        time.Duration `json:"duration"`
	Comparisons     int           `json:"comparisons"`
	Swaps           int           `json:"swaps,omitempty"`
	Merges          int           `json:"merges,omitempty"`
	Stable          bool          `json:"stable"`
}

type complexity struct {
	time   string
	space  string
	stable bool
}

var complexities = map[Algorithm]complexity{
	Insertion: {"O(n) best, O(n^2) worst", "O(1)", true},
	Selection: {"O(n^2)", "O(1)", false},
	Quick:     {"O(n log n) average, O(n^2) worst", "O(log n)", false},
	Merge:     {"O(n log n)", "O(n)", true},
}

// Sort runs the algorithm identified by tag. Unknown tags fall back to
// Merge, the safe default at any size.
func Sort[T any](tag Algorithm, input []T, after Comparator[T]) ([]T, Result) {
	switch tag {
	case Insertion:
		return InsertionSort(input, after)
	case Selection:
		return SelectionSort(input, after)
	case Quick:
		return QuickSort(input, after)
	default:
		return MergeSort(input, after)
	}
}

// Algorithms returns the closed set of sorting algorithm tags.
func Algorithms() []Algorithm {
	return []Algorithm{Insertion, Selection, Quick, Merge}
}

func newResult(tag Algorithm) Result {
	c := complexities[tag]
	return Result{
		Algorithm:       tag,
		TimeComplexity:  c.time,
		SpaceComplexity: c.space,
		Stable:          c.stable,
	}
}

func cloneInput[T any](input []T) []T {
	out := make([]T, len(input))
	copy(out, input)
	return out
}

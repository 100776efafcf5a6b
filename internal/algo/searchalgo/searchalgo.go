// Package searchalgo implements the search algorithms used by the
// orderflow engine. Each algorithm works over a snapshot slice, extracts
// a string key per element via the caller-supplied extractor, and
// reports comparison counts alongside the result.
//
// Algorithms never signal errors on well-formed input. Binary search
// over a sequence that is not ascending-sorted by the same key is a
// caller contract violation: the result is best-effort, not an error.
package searchalgo

import "time"

// Algorithm identifies one of the closed set of search algorithms.
type Algorithm string

const (
	Linear Algorithm = "linear"
	Binary Algorithm = "binary"
	Hash   Algorithm = "hash"
	Text   Algorithm = "text"
	Fuzzy  Algorithm = "fuzzy"
)

// DefaultFuzzyThreshold is the edit-distance cutoff used when the caller
// does not supply one.
const DefaultFuzzyThreshold = 2

// KeyFunc extracts the searchable key from an element.
type KeyFunc[T any] func(T) string

// Identity is the KeyFunc for plain string elements.
func Identity(s string) string { return s }

// Match is one accepted element with its position in the input snapshot.
type Match[T any] struct {
	Index   int `json:"index"`
	Element T   `json:"element"`
	// Distance and Similarity are populated by fuzzy search only.
	Distance   int     `json:"distance,omitempty"`
	Similarity float64 `json:"similarity,omitempty"`
}

// Result carries the outcome and metrics of one search execution.
// Immutable once produced.
type Result[T any] struct {
	Algorithm       Algorithm     `json:"algorithm"`
	Found           bool          `json:"found"`
	Index           int           `json:"index"` // first match, -1 when absent
	Matches         []Match[T]    `json:"matches,omitempty"`
	Comparisons     int           `json:"comparisons"`
	TableBuildOps   int           `json:"table_build_ops,omitempty"`
	TimeComplexity  string        `json:"time_complexity"`
	SpaceComplexity string        `json:"space_complexity"`
	Duration        time.Duration `json:"duration"`
}

var complexities = map[Algorithm][2]string{
	Linear: {"O(n)", "O(1)"},
	Binary: {"O(log n)", "O(1)"},
	Hash:   {"O(n) build + O(1) lookup", "O(n)"},
	Text:   {"O(n*m)", "O(1)"},
	Fuzzy:  {"O(n*m) per candidate", "O(m)"},
}

// Algorithms returns the closed set of element-search algorithm tags
// usable against an order snapshot. Text search operates on a corpus
// string and is listed separately by callers that can serve it.
func Algorithms() []Algorithm {
	return []Algorithm{Linear, Binary, Hash, Fuzzy}
}

func newResult[T any](tag Algorithm) Result[T] {
	c := complexities[tag]
	return Result[T]{
		Algorithm:       tag,
		Index:           -1,
		TimeComplexity:  c[0],
		SpaceComplexity: c[1],
	}
}

// Search dispatches to the algorithm identified by tag. Unknown tags
// fall back to Linear, which makes no assumptions about the input.
// Fuzzy runs with the default threshold; use FuzzySearch directly to
// override it.
func Search[T any](tag Algorithm, items []T, target string, key KeyFunc[T]) Result[T] {
	switch tag {
	case Binary:
		return BinarySearch(items, target, key)
	case Hash:
		return HashSearch(items, target, key)
	case Fuzzy:
		return FuzzySearch(items, target, key, DefaultFuzzyThreshold)
	default:
		return LinearSearch(items, target, key)
	}
}

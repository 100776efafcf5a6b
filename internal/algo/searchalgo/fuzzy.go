package searchalgo

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
)

// FuzzySearch computes the edit distance between the query and each
// candidate key, accepts matches with distance <= threshold, and ranks
// accepted matches by normalized similarity descending. Keys are
// compared case-insensitively. Multi-word keys are matched at token
// granularity as well: the distance of a key is the minimum over the
// whole key and each of its tokens, so a one-typo query still finds a
// longer title. A key containing the query as a substring matches at
// distance 0.
func FuzzySearch[T any](items []T, query string, key KeyFunc[T], threshold int) Result[T] {
	res := newResult[T](Fuzzy)
	start := time.Now()

	q := strings.ToLower(query)
	for i, e := range items {
		k := strings.ToLower(key(e))
		res.Comparisons++

		distance := keyDistance(q, k)
		if distance > threshold {
			continue
		}

		res.Matches = append(res.Matches, Match[T]{
			Index:      i,
			Element:    e,
			Distance:   distance,
			Similarity: similarity(distance, q, k),
		})
	}

	// Rank by similarity descending; equal scores keep snapshot order.
	sort.SliceStable(res.Matches, func(i, j int) bool {
		return res.Matches[i].Similarity > res.Matches[j].Similarity
	})

	if len(res.Matches) > 0 {
		res.Found = true
		res.Index = res.Matches[0].Index
	}

	res.Duration = time.Since(start)
	return res
}

// keyDistance returns the minimum edit distance between the query and
// the key or any of its whitespace-separated tokens. Both inputs are
// already lowercased.
func keyDistance(q, k string) int {
	if k == q || strings.Contains(k, q) {
		return 0
	}
	best := levenshtein.ComputeDistance(q, k)
	for _, token := range strings.Fields(k) {
		if d := levenshtein.ComputeDistance(q, token); d < best {
			best = d
		}
	}
	return best
}

// similarity normalizes an edit distance to [0,1]: 1 - d/max(|q|,|k|).
func similarity(distance int, q, k string) float64 {
	maxLen := math.Max(float64(len(q)), float64(len(k)))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

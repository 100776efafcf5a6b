package searchalgo

import (
	"strings"
	"time"
)

// TextResult carries the offsets of a substring scan over a corpus.
type TextResult struct {
	Algorithm       Algorithm     `json:"algorithm"`
	Found           bool          `json:"found"`
	Offsets         []int         `json:"offsets,omitempty"`
	Comparisons     int           `json:"comparisons"`
	TimeComplexity  string        `json:"time_complexity"`
	SpaceComplexity string        `json:"space_complexity"`
	Duration        time.Duration `json:"duration"`
}

// TextSearch performs a naive substring scan of pattern over corpus and
// returns all match start offsets. Case-insensitive unless caseSensitive
// is set. An empty pattern matches nothing.
func TextSearch(corpus, pattern string, caseSensitive bool) TextResult {
	c := complexities[Text]
	res := TextResult{
		Algorithm:       Text,
		TimeComplexity:  c[0],
		SpaceComplexity: c[1],
	}
	start := time.Now()

	if pattern == "" {
		res.Duration = time.Since(start)
		return res
	}

	haystack, needle := corpus, pattern
	if !caseSensitive {
		haystack = strings.ToLower(corpus)
		needle = strings.ToLower(pattern)
	}

	for i := 0; i+len(needle) <= len(haystack); i++ {
		matched := true
		for j := 0; j < len(needle); j++ {
			res.Comparisons++
			if haystack[i+j] != needle[j] {
				matched = false
				break
			}
		}
		if matched {
			res.Found = true
			res.Offsets = append(res.Offsets, i)
		}
	}

	res.Duration = time.Since(start)
	return res
}

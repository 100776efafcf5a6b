package searchalgo

import "time"

// LinearSearch scans front-to-back and returns the first exact key match.
func LinearSearch[T any](items []T, target string, key KeyFunc[T]) Result[T] {
	res := newResult[T](Linear)
	start := time.Now()

	for i, e := range items {
		res.Comparisons++
		if key(e) == target {
			res.Found = true
			res.Index = i
			res.Matches = append(res.Matches, Match[T]{Index: i, Element: e})
			break
		}
	}

	res.Duration = time.Since(start)
	return res
}

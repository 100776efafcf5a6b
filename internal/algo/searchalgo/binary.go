package searchalgo

import "time"

// BinarySearch halves the search interval each step. The input must be
// sorted ascending by the same key; sortedness is not validated and
// searching an unsorted sequence yields a best-effort (possibly wrong)
// not-found result rather than an error.
func BinarySearch[T any](items []T, target string, key KeyFunc[T]) Result[T] {
	res := newResult[T](Binary)
	start := time.Now()

	lo, hi := 0, len(items)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		k := key(items[mid])
		res.Comparisons++
		switch {
		case k == target:
			res.Found = true
			res.Index = mid
			res.Matches = append(res.Matches, Match[T]{Index: mid, Element: items[mid]})
			res.Duration = time.Since(start)
			return res
		case k < target:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}

	res.Duration = time.Since(start)
	return res
}

package searchalgo

import "time"

// HashSearch builds a key→(index, element) table over the full input on
// every call, then performs a single O(1) average lookup. The table is
// deliberately not cached between calls: the snapshot it indexes is
// already stale by the next call, and rebuilding removes a whole class
// of staleness bugs. Build cost is reported in TableBuildOps; the lookup
// itself counts as one comparison.
func HashSearch[T any](items []T, target string, key KeyFunc[T]) Result[T] {
	res := newResult[T](Hash)
	start := time.Now()

	type slot struct {
		index   int
		element T
	}
	table := make(map[string]slot, len(items))
	for i, e := range items {
		k := key(e)
		// First occurrence wins, matching linear search semantics.
		if _, exists := table[k]; !exists {
			table[k] = slot{index: i, element: e}
		}
		res.TableBuildOps++
	}

	res.Comparisons = 1
	if s, ok := table[target]; ok {
		res.Found = true
		res.Index = s.index
		res.Matches = append(res.Matches, Match[T]{Index: s.index, Element: s.element})
	}

	res.Duration = time.Since(start)
	return res
}

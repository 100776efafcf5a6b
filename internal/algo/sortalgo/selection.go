package sortalgo

import "time"

// SelectionSort repeatedly selects the minimum of the unprocessed suffix.
// One swap per pass; not stable; O(n^2) comparisons in every case.
func SelectionSort[T any](input []T, after Comparator[T]) ([]T, Result) {
	res := newResult(Selection)
	out := cloneInput(input)
	start := time.Now()

	for i := 0; i < len(out)-1; i++ {
		min := i
		for j := i + 1; j < len(out); j++ {
			res.Comparisons++
			if after(out[min], out[j]) {
				min = j
			}
		}
		if min != i {
			out[i], out[min] = out[min], out[i]
			res.Swaps++
		}
	}

	res.Duration = time.Since(start)
	return out, res
}

package sortalgo

import "time"

// InsertionSort shifts elements rightward while the comparator signals
// out-of-order. Stable; O(n) comparisons on already-sorted input. Shifts
// are reported in the Swaps counter.
func InsertionSort[T any](input []T, after Comparator[T]) ([]T, Result) {
	res := newResult(Insertion)
	out := cloneInput(input)
	start := time.Now()

	for i := 1; i < len(out); i++ {
		key := out[i]
		j := i - 1
		for j >= 0 {
			res.Comparisons++
			if !after(out[j], key) {
				break
			}
			out[j+1] = out[j]
			res.Swaps++
			j--
		}
		out[j+1] = key
	}

	res.Duration = time.Since(start)
	return out, res
}

package sortalgo

import "time"

// QuickSort partitions Lomuto-style around the last element as pivot and
// recurses on both partitions. Not stable; O(n^2) on adversarial input
// with this naive pivot choice.
func QuickSort[T any](input []T, after Comparator[T]) ([]T, Result) {
	res := newResult(Quick)
	out := cloneInput(input)
	start := time.Now()

	var sort func(lo, hi int)
	sort = func(lo, hi int) {
		if lo >= hi {
			return
		}
		p := partition(out, lo, hi, after, &res)
		sort(lo, p-1)
		sort(p+1, hi)
	}
	sort(0, len(out)-1)

	res.Duration = time.Since(start)
	return out, res
}

func partition[T any](out []T, lo, hi int, after Comparator[T], res *Result) int {
	pivot := out[hi]
	i := lo - 1
	for j := lo; j < hi; j++ {
		res.Comparisons++
		if !after(out[j], pivot) {
			i++
			if i != j {
				out[i], out[j] = out[j], out[i]
				res.Swaps++
			}
		}
	}
	if i+1 != hi {
		out[i+1], out[hi] = out[hi], out[i+1]
		res.Swaps++
	}
	return i + 1
}

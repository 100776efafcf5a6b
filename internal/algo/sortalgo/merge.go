package sortalgo

import "time"

// MergeSort recursively halves and merges. Stable: the left half wins
// ties during the merge. The Merges counter records merge operations.
func MergeSort[T any](input []T, after Comparator[T]) ([]T, Result) {
	res := newResult(Merge)
	start := time.Now()

	out := mergeSort(cloneInput(input), after, &res)

	res.Duration = time.Since(start)
	return out, res
}

func mergeSort[T any](in []T, after Comparator[T], res *Result) []T {
	if len(in) <= 1 {
		return in
	}
	mid := len(in) / 2
	left := mergeSort(in[:mid], after, res)
	right := mergeSort(in[mid:], after, res)
	return merge(left, right, after, res)
}

func merge[T any](left, right []T, after Comparator[T], res *Result) []T {
	res.Merges++
	out := make([]T, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		res.Comparisons++
		// Left preferred on tie to keep the sort stable.
		if !after(left[i], right[j]) {
			out = append(out, left[i])
			i++
		} else {
			out = append(out, right[j])
			j++
		}
	}
	out = append(out, left[i:]...)
	out = append(out, right[j:]...)
	return out
}

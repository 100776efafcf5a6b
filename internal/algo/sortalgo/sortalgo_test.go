package sortalgo

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intAfter(a, b int) bool { return a > b }

type keyed struct {
	key int
	seq int // admission order, used to observe stability
}

func keyedAfter(a, b keyed) bool { return a.key > b.key }

func runSort(t *testing.T, tag Algorithm, input []int) ([]int, Result) {
	t.Helper()
	out, res := Sort(tag, input, intAfter)
	assert.Equal(t, tag, res.Algorithm)
	return out, res
}

func TestSortCorrectnessAllAlgorithms(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, tag := range Algorithms() {
		t.Run(string(tag), func(t *testing.T) {
			for _, n := range []int{0, 1, 2, 10, 100, 500} {
				input := make([]int, n)
				for i := range input {
					input[i] = rng.Intn(50)
				}
				orig := append([]int(nil), input...)

				out, res := runSort(t, tag, input)

				// Input is never mutated.
				assert.Equal(t, orig, input)

				// Output is sorted.
				assert.True(t, sort.IntsAreSorted(out), "algorithm %s size %d", tag, n)

				// Output is a permutation of the input.
				want := append([]int(nil), input...)
				sort.Ints(want)
				assert.Equal(t, want, out)

				if n > 1 {
					assert.Greater(t, res.Comparisons, 0)
				}
			}
		})
	}
}

func TestInsertionSortBestCaseLinear(t *testing.T) {
	input := make([]int, 100)
	for i := range input {
		input[i] = i
	}
	_, res := InsertionSort(input, intAfter)
	assert.Equal(t, 99, res.Comparisons)
	assert.Equal(t, 0, res.Swaps)
}

func TestSelectionSortOneSwapPerPass(t *testing.T) {
	input := []int{5, 4, 3, 2, 1}
	out, res := SelectionSort(input, intAfter)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, out)
	// n*(n-1)/2 comparisons regardless of input shape.
	assert.Equal(t, 10, res.Comparisons)
	assert.LessOrEqual(t, res.Swaps, 4)
}

func TestStableSortsPreserveEqualKeyOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for _, tag := range []Algorithm{Insertion, Merge} {
		t.Run(string(tag), func(t *testing.T) {
			for trial := 0; trial < 50; trial++ {
				input := make([]keyed, 60)
				for i := range input {
					input[i] = keyed{key: rng.Intn(5), seq: i}
				}
				out, res := Sort(tag, input, keyedAfter)
				require.True(t, res.Stable)

				for i := 1; i < len(out); i++ {
					require.LessOrEqual(t, out[i-1].key, out[i].key)
					if out[i-1].key == out[i].key {
						require.Less(t, out[i-1].seq, out[i].seq,
							"%s reordered equal keys", tag)
					}
				}
			}
		})
	}
}

func TestUnstableSortsHaveCounterexample(t *testing.T) {
	// Selection and Quick must not be assumed stable: show that a
	// reordering of equal keys actually occurs on typical inputs.
	rng := rand.New(rand.NewSource(3))

	for _, tag := range []Algorithm{Selection, Quick} {
		t.Run(string(tag), func(t *testing.T) {
			reordered := false
			for trial := 0; trial < 200 && !reordered; trial++ {
				input := make([]keyed, 40)
				for i := range input {
					input[i] = keyed{key: rng.Intn(4), seq: i}
				}
				out, res := Sort(tag, input, keyedAfter)
				require.False(t, res.Stable)
				for i := 1; i < len(out); i++ {
					if out[i-1].key == out[i].key && out[i-1].seq > out[i].seq {
						reordered = true
						break
					}
				}
			}
			assert.True(t, reordered, "expected at least one equal-key reordering for %s", tag)
		})
	}
}

func TestMergeSortCountsMerges(t *testing.T) {
	input := []int{4, 2, 7, 1, 9, 3}
	out, res := MergeSort(input, intAfter)
	assert.Equal(t, []int{1, 2, 3, 4, 7, 9}, out)
	assert.Greater(t, res.Merges, 0)
	assert.Equal(t, "O(n log n)", res.TimeComplexity)
}

func TestQuickSortAdversarialSortedInput(t *testing.T) {
	// Already-sorted input is the worst case for a last-element pivot;
	// the result must still be correct.
	input := make([]int, 80)
	for i := range input {
		input[i] = i
	}
	out, res := QuickSort(input, intAfter)
	assert.Equal(t, input, out)
	// Worst case degenerates to n*(n-1)/2 comparisons.
	assert.Equal(t, 80*79/2, res.Comparisons)
}

func TestSortUnknownTagFallsBackToMerge(t *testing.T) {
	out, res := Sort(Algorithm("bogus"), []int{3, 1, 2}, intAfter)
	assert.Equal(t, []int{1, 2, 3}, out)
	assert.Equal(t, Merge, res.Algorithm)
}

func TestDescendingComparator(t *testing.T) {
	// Requested order is defined entirely by the comparator.
	out, _ := MergeSort([]int{1, 3, 2}, func(a, b int) bool { return a < b })
	assert.Equal(t, []int{3, 2, 1}, out)
}

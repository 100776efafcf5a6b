// Package bench generates synthetic datasets and drives every sorting
// and search algorithm across size classes to produce comparative
// reports. It reads engine components but never touches engine state.
package bench

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookvault/orderflow/internal/algo/searchalgo"
	"github.com/bookvault/orderflow/internal/algo/sortalgo"
	"github.com/bookvault/orderflow/pkg/models"
)

// Shape identifies a synthetic dataset shape.
type Shape string

const (
	ShapeRandom   Shape = "random"
	ShapeSorted   Shape = "sorted"
	ShapeReversed Shape = "reversed"
	ShapeDomain   Shape = "domain"
)

// Shapes returns all dataset shapes in report order.
func Shapes() []Shape {
	return []Shape{ShapeRandom, ShapeSorted, ShapeReversed, ShapeDomain}
}

// Options configures a benchmark run.
type Options struct {
	// Sizes are the dataset size classes to cover.
	Sizes []int
	// Seed makes dataset generation reproducible.
	Seed int64
	// FuzzyThreshold is the edit-distance cutoff for the fuzzy runs.
	FuzzyThreshold int
	// Parallel fans independent algorithm runs out over goroutines.
	Parallel bool
}

// DefaultOptions covers the three size classes around the selector
// thresholds.
func DefaultOptions() Options {
	return Options{
		Sizes:          []int{10, 50, 500},
		Seed:           1,
		FuzzyThreshold: searchalgo.DefaultFuzzyThreshold,
	}
}

// SortRun is one sort execution over one dataset.
type SortRun struct {
	Algorithm   string        `json:"algorithm" yaml:"algorithm"`
	Shape       Shape         `json:"shape" yaml:"shape"`
	Size        int           `json:"size" yaml:"size"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
	Comparisons int           `json:"comparisons" yaml:"comparisons"`
	Swaps       int           `json:"swaps" yaml:"swaps"`
	Merges      int           `json:"merges" yaml:"merges"`
	Stable      bool          `json:"stable" yaml:"stable"`
}

// SearchRun is one search execution over one dataset.
type SearchRun struct {
	Algorithm   string        `json:"algorithm" yaml:"algorithm"`
	Size        int           `json:"size" yaml:"size"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
	Comparisons int           `json:"comparisons" yaml:"comparisons"`
	Found       bool          `json:"found" yaml:"found"`
}

// AlgorithmSummary aggregates all runs of one algorithm.
type AlgorithmSummary struct {
	Algorithm        string        `json:"algorithm" yaml:"algorithm"`
	Runs             int           `json:"runs" yaml:"runs"`
	AvgDuration      time.Duration `json:"avg_duration" yaml:"avg_duration"`
	TotalComparisons int           `json:"total_comparisons" yaml:"total_comparisons"`
	Stable           bool          `json:"stable" yaml:"stable"`
}

// Report is the composite outcome of one benchmark invocation.
type Report struct {
	GeneratedAt   time.Time          `json:"generated_at" yaml:"generated_at"`
	Sizes         []int              `json:"sizes" yaml:"sizes"`
	Sorts         []SortRun          `json:"sorts" yaml:"sorts"`
	Searches      []SearchRun        `json:"searches" yaml:"searches"`
	SortSummary   []AlgorithmSummary `json:"sort_summary" yaml:"sort_summary"`
	SearchSummary []AlgorithmSummary `json:"search_summary" yaml:"search_summary"`
	FastestSort   string             `json:"fastest_sort" yaml:"fastest_sort"`
	FastestSearch string             `json:"fastest_search" yaml:"fastest_search"`
}

// Run executes every algorithm over every shape and size class.
func Run(opts Options) Report {
	if len(opts.Sizes) == 0 {
		opts.Sizes = DefaultOptions().Sizes
	}
	if opts.FuzzyThreshold <= 0 {
		opts.FuzzyThreshold = searchalgo.DefaultFuzzyThreshold
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	report := Report{GeneratedAt: time.Now(), Sizes: opts.Sizes}

	var mu sync.Mutex
	var wg sync.WaitGroup
	runSort := func(run func() SortRun) {
		if opts.Parallel {
			wg.Add(1)
			go func() {
				defer wg.Done()
				r := run()
				mu.Lock()
				report.Sorts = append(report.Sorts, r)
				mu.Unlock()
			}()
			return
		}
		report.Sorts = append(report.Sorts, run())
	}

	for _, size := range opts.Sizes {
		for _, shape := range Shapes() {
			if shape == ShapeDomain {
				items := domainDataset(rng, size)
				for _, tag := range sortalgo.Algorithms() {
					tag := tag
					input := items
					runSort(func() SortRun {
						_, res := sortalgo.Sort(tag, input, func(a, b models.LineItem) bool {
							return a.Title > b.Title
						})
						return sortRun(res, ShapeDomain, len(input))
					})
				}
				continue
			}

			keys := stringDataset(rng, shape, size)
			for _, tag := range sortalgo.Algorithms() {
				tag := tag
				input := keys
				shape := shape
				runSort(func() SortRun {
					_, res := sortalgo.Sort(tag, input, func(a, b string) bool { return a > b })
					return sortRun(res, shape, len(input))
				})
			}
		}
	}
	wg.Wait()

	report.Searches = runSearches(rng, opts)
	report.SortSummary, report.FastestSort = summarize(report.Sorts, sortKey)
	report.SearchSummary, report.FastestSearch = summarize(report.Searches, searchKey)
	return report
}

func sortRun(res sortalgo.Result, shape Shape, size int) SortRun {
	return SortRun{
		Algorithm:   string(res.Algorithm),
		Shape:       shape,
		Size:        size,
		Duration:    res.Duration,
		Comparisons: res.Comparisons,
		Swaps:       res.Swaps,
		Merges:      res.Merges,
		Stable:      res.Stable,
	}
}

func runSearches(rng *rand.Rand, opts Options) []SearchRun {
	var runs []SearchRun
	for _, size := range opts.Sizes {
		keys := stringDataset(rng, ShapeRandom, size)
		sorted := stringDataset(rng, ShapeSorted, size)
		target := keys[rng.Intn(len(keys))]

		for _, tag := range searchalgo.Algorithms() {
			var res searchalgo.Result[string]
			switch tag {
			case searchalgo.Binary:
				res = searchalgo.BinarySearch(sorted, sorted[rng.Intn(len(sorted))], searchalgo.Identity)
			case searchalgo.Fuzzy:
				res = searchalgo.FuzzySearch(keys, mutate(rng, target), searchalgo.Identity, opts.FuzzyThreshold)
			default:
				res = searchalgo.Search(tag, keys, target, searchalgo.Identity)
			}
			runs = append(runs, SearchRun{
				Algorithm:   string(tag),
				Size:        size,
				Duration:    res.Duration,
				Comparisons: res.Comparisons,
				Found:       res.Found,
			})
		}

		// Text search runs over the dataset joined into a corpus.
		corpus := strings.Join(keys, " ")
		tres := searchalgo.TextSearch(corpus, target, false)
		runs = append(runs, SearchRun{
			Algorithm:   string(searchalgo.Text),
			Size:        size,
			Duration:    tres.Duration,
			Comparisons: tres.Comparisons,
			Found:       tres.Found,
		})
	}
	return runs
}

func sortKey(r SortRun) (string, time.Duration, int, bool) {
	return r.Algorithm, r.Duration, r.Comparisons, r.Stable
}

func searchKey(r SearchRun) (string, time.Duration, int, bool) {
	return r.Algorithm, r.Duration, r.Comparisons, false
}

func summarize[T any](runs []T, key func(T) (string, time.Duration, int, bool)) ([]AlgorithmSummary, string) {
	byAlg := make(map[string]*AlgorithmSummary)
	var order []string
	var totals = make(map[string]time.Duration)

	for _, r := range runs {
		alg, d, comps, stable := key(r)
		s, ok := byAlg[alg]
		if !ok {
			s = &AlgorithmSummary{Algorithm: alg, Stable: stable}
			byAlg[alg] = s
			order = append(order, alg)
		}
		s.Runs++
		s.TotalComparisons += comps
		totals[alg] += d
	}

	out := make([]AlgorithmSummary, 0, len(order))
	fastest := ""
	var fastestAvg time.Duration
	for _, alg := range order {
		s := byAlg[alg]
		s.AvgDuration = totals[alg] / time.Duration(s.Runs)
		out = append(out, *s)
		if fastest == "" || s.AvgDuration < fastestAvg {
			fastest = alg
			fastestAvg = s.AvgDuration
		}
	}
	return out, fastest
}

// stringDataset generates size keys in the requested shape.
func stringDataset(rng *rand.Rand, shape Shape, size int) []string {
	out := make([]string, size)
	for i := range out {
		switch shape {
		case ShapeSorted:
			out[i] = fmt.Sprintf("key-%06d", i)
		case ShapeReversed:
			out[i] = fmt.Sprintf("key-%06d", size-1-i)
		default:
			out[i] = fmt.Sprintf("key-%06d", rng.Intn(size*10))
		}
	}
	return out
}

var titleWords = []string{
	"Algorithms", "Patterns", "Systems", "Networks", "Compilers",
	"Databases", "Concurrency", "Structures", "Design", "Practice",
}

// domainDataset generates book-shaped line items with random titles.
func domainDataset(rng *rand.Rand, size int) []models.LineItem {
	out := make([]models.LineItem, size)
	for i := range out {
		title := fmt.Sprintf("%s of %s, Vol. %d",
			titleWords[rng.Intn(len(titleWords))],
			titleWords[rng.Intn(len(titleWords))],
			rng.Intn(9)+1)
		out[i] = models.LineItem{
			Title:    title,
			ISBN:     fmt.Sprintf("978-%09d", rng.Intn(1_000_000_000)),
			Price:    decimal.NewFromInt(int64(rng.Intn(80) + 5)),
			Quantity: rng.Intn(3) + 1,
		}
	}
	return out
}

// mutate introduces a single-character substitution so the fuzzy run
// exercises a non-exact query.
func mutate(rng *rand.Rand, s string) string {
	if len(s) == 0 {
		return s
	}
	b := []byte(s)
	b[rng.Intn(len(b))] = 'z'
	return string(b)
}

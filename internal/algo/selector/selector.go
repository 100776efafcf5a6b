// Package selector maps workload shape to a concrete algorithm tag.
// Selection is a pure table lookup with no side effects; an explicit
// caller-supplied algorithm always takes precedence over the tables.
package selector

import (
	"github.com/bookvault/orderflow/internal/algo/searchalgo"
	"github.com/bookvault/orderflow/internal/algo/sortalgo"
)

// SearchHint describes the shape of a search query.
type SearchHint string

const (
	// HintOrderNumber is an exact-identifier lookup.
	HintOrderNumber SearchHint = "orderNumber"
	// HintCustomer is a free-text name lookup.
	HintCustomer SearchHint = "customer"
	// HintStatus is a categorical lookup over a small value set.
	HintStatus SearchHint = "status"
)

// SortPolicy holds the size thresholds for sort selection. The defaults
// come from configuration, not from the algorithm library; callers may
// override per call.
type SortPolicy struct {
	// InsertionMax is the largest input size served by insertion sort.
	InsertionMax int
	// QuickMax is the largest input size served by quick sort; anything
	// larger goes to merge sort, favoring stability at scale.
	QuickMax int
}

// DefaultSortPolicy returns the documented thresholds: <=10 insertion,
// 11-50 quick, >50 merge.
func DefaultSortPolicy() SortPolicy {
	return SortPolicy{InsertionMax: 10, QuickMax: 50}
}

// Sort picks a sorting algorithm for an input of the given size. An
// explicit override wins unconditionally.
func (p SortPolicy) Sort(size int, override sortalgo.Algorithm) sortalgo.Algorithm {
	if override != "" {
		return override
	}
	switch {
	case size <= p.InsertionMax:
		return sortalgo.Insertion
	case size <= p.QuickMax:
		return sortalgo.Quick
	default:
		return sortalgo.Merge
	}
}

// searchTable is the closed hint→algorithm mapping.
var searchTable = map[SearchHint]searchalgo.Algorithm{
	HintOrderNumber: searchalgo.Hash,
	HintCustomer:    searchalgo.Fuzzy,
	HintStatus:      searchalgo.Linear,
}

// Search picks a search algorithm for the given query shape. An explicit
// override wins unconditionally; unknown hints fall back to linear,
// which makes no assumptions about the snapshot.
func Search(hint SearchHint, override searchalgo.Algorithm) searchalgo.Algorithm {
	if override != "" {
		return override
	}
	if alg, ok := searchTable[hint]; ok {
		return alg
	}
	return searchalgo.Linear
}

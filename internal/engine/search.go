package engine

import (
	"go.uber.org/zap"

	"github.com/bookvault/orderflow/internal/algo/searchalgo"
	"github.com/bookvault/orderflow/internal/algo/selector"
	"github.com/bookvault/orderflow/pkg/metrics"
	"github.com/bookvault/orderflow/pkg/models"
)

// SearchResponse is the outcome of one order search, augmented with the
// number of orders scanned.
type SearchResponse struct {
	Found     bool                              `json:"found"`
	Matches   []searchalgo.Match[*models.Order] `json:"matches,omitempty"`
	Algorithm searchalgo.Algorithm              `json:"algorithm"`
	Result    searchalgo.Result[*models.Order]  `json:"result"`
	Scanned   int                               `json:"scanned"`
}

// SearchOrders runs the selector-chosen (or caller-chosen) search
// algorithm over a snapshot of pending plus completed orders. The
// queues are never mutated; an explicit override always beats the hint
// table.
func (e *Engine) SearchOrders(term string, hint selector.SearchHint, override searchalgo.Algorithm) *SearchResponse {
	e.mu.Lock()
	snapshot := append(e.pending.Items(), e.completed.Items()...)
	threshold := e.fuzzyThreshold
	e.mu.Unlock()

	tag := selector.Search(hint, override)
	key := keyFor(hint)

	var res searchalgo.Result[*models.Order]
	if tag == searchalgo.Fuzzy {
		res = searchalgo.FuzzySearch(snapshot, term, key, threshold)
	} else {
		res = searchalgo.Search(tag, snapshot, term, key)
	}

	e.mu.Lock()
	e.stats.SearchUsage[string(tag)]++
	e.mu.Unlock()
	metrics.AlgorithmUsage.WithLabelValues("search", string(tag)).Inc()

	e.logger.Debug("order search",
		zap.String("term", term),
		zap.String("hint", string(hint)),
		zap.String("algorithm", string(tag)),
		zap.Bool("found", res.Found),
		zap.Int("scanned", len(snapshot)))

	return &SearchResponse{
		Found:     res.Found,
		Matches:   res.Matches,
		Algorithm: tag,
		Result:    res,
		Scanned:   len(snapshot),
	}
}

// keyFor maps a query shape to the order field it searches.
func keyFor(hint selector.SearchHint) searchalgo.KeyFunc[*models.Order] {
	switch hint {
	case selector.HintCustomer:
		return func(o *models.Order) string { return o.CustomerRef }
	case selector.HintStatus:
		return func(o *models.Order) string { return string(o.Status) }
	default:
		return func(o *models.Order) string { return o.OrderNumber }
	}
}

package engine

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bookvault/orderflow/internal/algo/sortalgo"
	"github.com/bookvault/orderflow/pkg/errors"
	"github.com/bookvault/orderflow/pkg/metrics"
	"github.com/bookvault/orderflow/pkg/models"
)

// ProcessResult reports one completed (or failed) pipeline run.
type ProcessResult struct {
	Order      *models.Order      `json:"order"`
	Algorithm  sortalgo.Algorithm `json:"algorithm"`
	SortResult sortalgo.Result    `json:"sort_result"`
}

// ProcessNext dequeues one pending order and drives it through the
// pipeline: validation, availability check, line-item sort, pricing,
// completion. On any step failure the order is marked Error, the
// failure is recorded in history and the order is not re-queued; the
// failed order is still returned so the host can persist it.
//
// The whole run holds the instance mutex: an in-flight order is
// invisible to other mutators, and status queries observe either the
// pre- or post-processing state, never a partial one.
func (e *Engine) ProcessNext(ctx context.Context) (*ProcessResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, ok := e.pending.Dequeue()
	metrics.PendingDepth.Set(float64(e.pending.Len()))
	if !ok {
		return nil, errors.New(errors.KindEmptyQueue, "no pending orders")
	}

	started := e.now()
	order.Status = models.StatusProcessing

	// Validation.
	order.RecordStep(stepValidating)
	if len(order.Items) == 0 {
		return e.failOrder(order, errors.New(errors.KindValidation, "order has no line items"))
	}
	if order.CustomerRef == "" {
		return e.failOrder(order, errors.New(errors.KindValidation, "order has no customer reference"))
	}

	// Availability check, bounded by the configured timeout. A timeout
	// surfaces as an availability failure rather than a stalled pipeline.
	order.RecordStep(stepAvailability)
	checkCtx, cancel := context.WithTimeout(ctx, e.availabilityTimeout)
	err := e.checkAvailability(checkCtx, order)
	cancel()
	if err != nil {
		return e.failOrder(order, errors.Wrap(err, errors.KindAvailability, "availability check failed"))
	}

	// Sort line items by title; the selector picks the algorithm from
	// the input size.
	order.RecordStep(stepSorting)
	tag := e.sortPolicy.Sort(len(order.Items), "")
	sorted, sortRes := sortalgo.Sort(tag, order.Items, func(a, b models.LineItem) bool {
		return a.Title > b.Title
	})
	order.Items = sorted
	order.SortAlgorithm = string(tag)

	// Pricing: total = sum(price * quantity).
	order.RecordStep(stepPricing)
	total := decimal.Zero
	for _, item := range order.Items {
		total = total.Add(item.Subtotal())
	}
	order.Total = total

	order.RecordStep(stepCompleted)
	order.Status = models.StatusCompleted
	order.ProcessedAt = e.now()
	order.Elapsed = order.ProcessedAt.Sub(started)

	e.completed.Enqueue(order)
	e.pushHistory(models.HistoryEntry{
		Action:      models.ActionOrderProcessed,
		OrderNumber: order.OrderNumber,
		Timestamp:   order.ProcessedAt,
		Algorithm:   string(tag),
		Elapsed:     order.Elapsed,
	})

	// Statistics: incremental mean, not a full recompute.
	e.stats.TotalProcessed++
	n := time.Duration(e.stats.TotalProcessed)
	e.stats.AvgProcessingTime += (order.Elapsed - e.stats.AvgProcessingTime) / n
	e.stats.SortUsage[string(tag)]++

	metrics.OrdersProcessed.WithLabelValues("completed").Inc()
	metrics.ProcessingLatency.Observe(order.Elapsed.Seconds())
	metrics.AlgorithmUsage.WithLabelValues("sort", string(tag)).Inc()
	metrics.CompletedDepth.Set(float64(e.completed.Len()))

	e.logger.Info("order processed",
		zap.String("order_number", order.OrderNumber),
		zap.String("algorithm", string(tag)),
		zap.Int("comparisons", sortRes.Comparisons),
		zap.String("total", order.Total.String()),
		zap.Duration("elapsed", order.Elapsed))

	return &ProcessResult{Order: order, Algorithm: tag, SortResult: sortRes}, nil
}

// failOrder marks the order Error, records the failure in history and
// returns the order alongside the error. The order is not re-queued.
// Callers hold the instance mutex.
func (e *Engine) failOrder(order *models.Order, err error) (*ProcessResult, error) {
	order.Status = models.StatusError
	order.ErrorMessage = err.Error()
	order.RecordStep(stepError)

	e.pushHistory(models.HistoryEntry{
		Action:      models.ActionOrderError,
		OrderNumber: order.OrderNumber,
		Timestamp:   e.now(),
		Detail:      err.Error(),
	})
	metrics.OrdersProcessed.WithLabelValues("error").Inc()

	e.logger.Warn("order processing failed",
		zap.String("order_number", order.OrderNumber),
		zap.Error(err))

	return &ProcessResult{Order: order}, err
}

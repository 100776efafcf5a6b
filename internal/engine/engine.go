// Package engine implements the orderflow processing pipeline: order
// admission into a pending queue, a fixed multi-step state machine per
// order, a processing-history stack and process-wide statistics.
//
// One Engine instance is the unit of consistency. All mutating entry
// points serialize on the instance mutex so that sorting, pricing and
// history recording appear atomic to status queries. Search and status
// reads operate on snapshots.
package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookvault/orderflow/internal/algo/searchalgo"
	"github.com/bookvault/orderflow/internal/algo/selector"
	"github.com/bookvault/orderflow/pkg/container"
	"github.com/bookvault/orderflow/pkg/errors"
	"github.com/bookvault/orderflow/pkg/metrics"
	"github.com/bookvault/orderflow/pkg/models"
)

// AvailabilityFunc checks that every item on an order can be fulfilled.
// The default implementation always succeeds; hosts plug in a real
// inventory collaborator. The engine bounds each call with a timeout.
type AvailabilityFunc func(ctx context.Context, order *models.Order) error

// Engine drives orders through the processing pipeline. Construct with
// New; the zero value is not usable.
type Engine struct {
	mu     sync.Mutex
	logger *zap.Logger

	pending   *container.Queue[*models.Order]
	completed *container.Queue[*models.Order]
	history   *container.Stack[models.HistoryEntry]
	stats     models.Statistics

	validate            *validator.Validate
	sortPolicy          selector.SortPolicy
	fuzzyThreshold      int
	newID               func() string
	checkAvailability   AvailabilityFunc
	availabilityTimeout time.Duration
	now                 func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithSortPolicy overrides the default sort-selection thresholds.
func WithSortPolicy(p selector.SortPolicy) Option {
	return func(e *Engine) { e.sortPolicy = p }
}

// WithFuzzyThreshold overrides the default fuzzy-search edit distance.
func WithFuzzyThreshold(threshold int) Option {
	return func(e *Engine) { e.fuzzyThreshold = threshold }
}

// WithIDGenerator replaces the identifier generator. Generated IDs must
// be unique across the process lifetime.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// WithAvailabilityCheck plugs in the external availability collaborator.
func WithAvailabilityCheck(check AvailabilityFunc) Option {
	return func(e *Engine) { e.checkAvailability = check }
}

// WithAvailabilityTimeout bounds the availability check. A timed-out
// check fails the order with an availability error.
func WithAvailabilityTimeout(d time.Duration) Option {
	return func(e *Engine) { e.availabilityTimeout = d }
}

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine with empty queues and zeroed statistics.
func New(logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		logger:              logger,
		pending:             container.NewQueue[*models.Order](),
		completed:           container.NewQueue[*models.Order](),
		history:             container.NewStack[models.HistoryEntry](),
		stats:               models.NewStatistics(),
		validate:            validator.New(),
		sortPolicy:          selector.DefaultSortPolicy(),
		fuzzyThreshold:      searchalgo.DefaultFuzzyThreshold,
		newID:               defaultOrderNumber,
		checkAvailability:   func(context.Context, *models.Order) error { return nil },
		availabilityTimeout: 5 * time.Second,
		now:                 time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// defaultOrderNumber generates a collision-resistant order identifier.
func defaultOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// AddOrderRequest is the admission payload.
type AddOrderRequest struct {
	CustomerRef string            `json:"customer_ref" validate:"required"`
	Items       []models.LineItem `json:"items" validate:"required,min=1,dive"`
}

// AddOrderResult reports the assigned identifier and queue position.
type AddOrderResult struct {
	OrderNumber   string `json:"order_number"`
	QueuePosition int    `json:"queue_position"`
}

// AddOrder validates the request, assigns an identifier, enqueues the
// order as Pending and records an ORDER_ADDED history entry.
func (e *Engine) AddOrder(req AddOrderRequest) (*AddOrderResult, error) {
	if err := e.validate.Struct(req); err != nil {
		return nil, errors.Wrap(err, errors.KindValidation, "invalid order request")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	order := &models.Order{
		OrderNumber: e.newID(),
		CustomerRef: req.CustomerRef,
		Items:       req.Items,
		Status:      models.StatusPending,
		CreatedAt:   e.now(),
	}
	order.RecordStep(stepAdded)

	e.pending.Enqueue(order)
	e.pushHistory(models.HistoryEntry{
		Action:      models.ActionOrderAdded,
		OrderNumber: order.OrderNumber,
		Timestamp:   e.now(),
	})
	metrics.PendingDepth.Set(float64(e.pending.Len()))

	e.logger.Info("order added",
		zap.String("order_number", order.OrderNumber),
		zap.String("customer_ref", order.CustomerRef),
		zap.Int("items", len(order.Items)),
		zap.Int("queue_position", e.pending.Len()))

	return &AddOrderResult{
		OrderNumber:   order.OrderNumber,
		QueuePosition: e.pending.Len(),
	}, nil
}

// pushHistory records an entry and keeps the depth gauge current.
// Callers hold the instance mutex.
func (e *Engine) pushHistory(entry models.HistoryEntry) {
	e.history.Push(entry)
	metrics.HistoryDepth.Set(float64(e.history.Len()))
}

// Processing-step labels recorded on the order's append-only log.
const (
	stepAdded        = "added"
	stepValidating   = "validating"
	stepAvailability = "checking_availability"
	stepSorting      = "sorting"
	stepPricing      = "pricing"
	stepCompleted    = "completed"
	stepError        = "error"
)

// Package models defines the domain records shared across the orderflow
// engine, persistence sink and HTTP surface.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle status of an order.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
	StatusError      Status = "ERROR"
)

// LineItem is a single book position on an order.
type LineItem struct {
	Title    string          `json:"title" validate:"required"`
	Author   string          `json:"author"`
	ISBN     string          `json:"isbn"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" validate:"min=1"`
}

// Subtotal returns price multiplied by quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Order is a work item owned by the engine while it sits in the pending
// or completed queue. Once finalized it is handed to the persistence sink.
type Order struct {
	OrderNumber string          `json:"order_number"`
	CustomerRef string          `json:"customer_ref"`
	Items       []LineItem      `json:"items"`
	Status      Status          `json:"status"`
	Total       decimal.Decimal `json:"total"`
	// Steps is the append-only log of processing-step labels.
	Steps         []string      `json:"steps"`
	SortAlgorithm string        `json:"sort_algorithm,omitempty"`
	Elapsed       time.Duration `json:"elapsed,omitempty"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	ProcessedAt   time.Time     `json:"processed_at,omitempty"`
}

// RecordStep appends a processing-step label to the order's log.
func (o *Order) RecordStep(label string) {
	o.Steps = append(o.Steps, label)
}

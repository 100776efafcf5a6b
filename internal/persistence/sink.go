// Package persistence implements the durable sink for finalized orders
// and history entries. The engine never writes here itself: the host
// calls the sink after AddOrder and ProcessNext return, per the
// core-to-collaborator boundary.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bookvault/orderflow/pkg/models"
)

// Sink stores finalized orders and history entries.
type Sink interface {
	SaveOrder(ctx context.Context, order *models.Order) error
	SaveHistory(ctx context.Context, entry models.HistoryEntry) error
}

// NopSink discards everything; the default when no database is
// configured.
type NopSink struct{}

func (NopSink) SaveOrder(context.Context, *models.Order) error { return nil }

func (NopSink) SaveHistory(context.Context, models.HistoryEntry) error { return nil }

// OrderRecord is the stored form of a finalized order. Line items are
// kept as a JSON document: the sink archives what the engine produced,
// it does not re-normalize it.
type OrderRecord struct {
	ID            uint   `gorm:"primaryKey"`
	OrderNumber   string `gorm:"uniqueIndex;size:64"`
	CustomerRef   string `gorm:"index;size:128"`
	Status        string `gorm:"size:16"`
	Total         string `gorm:"size:32"`
	SortAlgorithm string `gorm:"size:16"`
	ItemsJSON     string
	ErrorMessage  string
	CreatedAt     time.Time
	ProcessedAt   time.Time
}

// HistoryRecord is the stored form of one history entry.
type HistoryRecord struct {
	ID          uint   `gorm:"primaryKey"`
	Action      string `gorm:"index;size:32"`
	OrderNumber string `gorm:"index;size:64"`
	Algorithm   string `gorm:"size:16"`
	ElapsedNs   int64
	Detail      string
	Timestamp   time.Time
}

// SQLiteSink persists to a local sqlite database via gorm.
type SQLiteSink struct {
	db     *gorm.DB
	logger *zap.Logger
}

var _ Sink = (*SQLiteSink)(nil)

// NewSQLiteSink opens (or creates) the database at dsn and migrates the
// schema.
func NewSQLiteSink(dsn string, logger *zap.Logger) (*SQLiteSink, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", dsn, err)
	}
	if err := db.AutoMigrate(&OrderRecord{}, &HistoryRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &SQLiteSink{db: db, logger: logger}, nil
}

// SaveOrder upserts the order keyed by order number. Orders pass through
// the sink once as Pending and again when finalized.
func (s *SQLiteSink) SaveOrder(ctx context.Context, order *models.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode line items: %w", err)
	}

	rec := OrderRecord{
		OrderNumber:   order.OrderNumber,
		CustomerRef:   order.CustomerRef,
		Status:        string(order.Status),
		Total:         order.Total.String(),
		SortAlgorithm: order.SortAlgorithm,
		ItemsJSON:     string(itemsJSON),
		ErrorMessage:  order.ErrorMessage,
		CreatedAt:     order.CreatedAt,
		ProcessedAt:   order.ProcessedAt,
	}

	err = s.db.WithContext(ctx).
		Where(OrderRecord{OrderNumber: order.OrderNumber}).
		Assign(rec).
		FirstOrCreate(&OrderRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to save order %s: %w", order.OrderNumber, err)
	}

	s.logger.Debug("order persisted",
		zap.String("order_number", order.OrderNumber),
		zap.String("status", string(order.Status)))
	return nil
}

// SaveHistory appends one history entry.
func (s *SQLiteSink) SaveHistory(ctx context.Context, entry models.HistoryEntry) error {
	rec := HistoryRecord{
		Action:      string(entry.Action),
		OrderNumber: entry.OrderNumber,
		Algorithm:   entry.Algorithm,
		ElapsedNs:   entry.Elapsed.Nanoseconds(),
		Detail:      entry.Detail,
		Timestamp:   entry.Timestamp,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}
	return nil
}

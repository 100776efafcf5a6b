package models

import "time"

// HistoryAction tags a history entry with the transition that produced it.
type HistoryAction string

const (
	ActionOrderAdded     HistoryAction = "ORDER_ADDED"
	ActionOrderProcessed HistoryAction = "ORDER_PROCESSED"
	ActionOrderError     HistoryAction = "ORDER_ERROR"
)

// HistoryEntry is an immutable record of one engine state transition.
// Entries are pushed on every transition and only ever read or popped.
type HistoryEntry struct {
	Action      HistoryAction `json:"action"`
	OrderNumber string        `json:"order_number"`
	Timestamp   time.Time     `json:"timestamp"`
	// Algorithm and Elapsed are set on ORDER_PROCESSED entries.
	Algorithm string        `json:"algorithm,omitempty"`
	Elapsed   time.Duration `json:"elapsed,omitempty"`
	// Detail carries the error message on ORDER_ERROR entries.
	Detail string `json:"detail,omitempty"`
}

// Statistics holds process-wide counters maintained by the engine.
type Statistics struct {
	TotalProcessed int `json:"total_processed"`
	// AvgProcessingTime is maintained by incremental mean update.
	AvgProcessingTime time.Duration  `json:"avg_processing_time"`
	SortUsage         map[string]int `json:"sort_usage"`
	SearchUsage       map[string]int `json:"search_usage"`
}

// NewStatistics returns zeroed statistics with allocated tallies.
func NewStatistics() Statistics {
	return Statistics{
		SortUsage:   make(map[string]int),
		SearchUsage: make(map[string]int),
	}
}

// Clone returns an independent copy safe to hand to readers.
func (s Statistics) Clone() Statistics {
	out := s
	out.SortUsage = make(map[string]int, len(s.SortUsage))
	for k, v := range s.SortUsage {
		out.SortUsage[k] = v
	}
	out.SearchUsage = make(map[string]int, len(s.SearchUsage))
	for k, v := range s.SearchUsage {
		out.SearchUsage[k] = v
	}
	return out
}

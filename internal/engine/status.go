package engine

import (
	"github.com/bookvault/orderflow/pkg/errors"
	"github.com/bookvault/orderflow/pkg/metrics"
	"github.com/bookvault/orderflow/pkg/models"
)

// QueueStatus is an O(1) snapshot of the engine's observable state.
type QueueStatus struct {
	PendingSize   int                  `json:"pending_size"`
	CompletedSize int                  `json:"completed_size"`
	HistorySize   int                  `json:"history_size"`
	NextPending   *models.Order        `json:"next_pending,omitempty"`
	LastHistory   *models.HistoryEntry `json:"last_history,omitempty"`
	Statistics    models.Statistics    `json:"statistics"`
}

// Status returns queue sizes, the next pending peek, the most recent
// history entry and a copy of current statistics. Read-only and
// idempotent between mutations.
func (e *Engine) Status() QueueStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := QueueStatus{
		PendingSize:   e.pending.Len(),
		CompletedSize: e.completed.Len(),
		HistorySize:   e.history.Len(),
		Statistics:    e.stats.Clone(),
	}
	if next, ok := e.pending.Peek(); ok {
		st.NextPending = next
	}
	if last, ok := e.history.Peek(); ok {
		entry := last
		st.LastHistory = &entry
	}
	return st
}

// History returns the last n entries, most recent first. The history
// stack is inspected through a snapshot and never drained: the stack
// contents are identical before and after the call.
func (e *Engine) History(n int) []models.HistoryEntry {
	e.mu.Lock()
	entries := e.history.Items() // bottom-to-top
	e.mu.Unlock()

	if n <= 0 || n > len(entries) {
		n = len(entries)
	}
	out := make([]models.HistoryEntry, 0, n)
	for i := len(entries) - 1; i >= len(entries)-n; i-- {
		out = append(out, entries[i])
	}
	return out
}

// UndoLast pops the most recent history entry. Only ORDER_PROCESSED
// entries are undoable and the undo is an acknowledgment only: the
// order is not moved back to the pending queue. This mirrors the
// documented limitation of the processing history — undo acknowledges
// the entry without restoring queue state. Non-undoable entries are
// left in place and reported as NotUndoable.
func (e *Engine) UndoLast() (*models.HistoryEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	top, ok := e.history.Peek()
	if !ok {
		return nil, errors.New(errors.KindNotUndoable, "history is empty")
	}
	if top.Action != models.ActionOrderProcessed {
		return nil, errors.Newf(errors.KindNotUndoable, "entry %s is not undoable", top.Action)
	}

	entry, _ := e.history.Pop()
	metrics.HistoryDepth.Set(float64(e.history.Len()))
	return &entry, nil
}

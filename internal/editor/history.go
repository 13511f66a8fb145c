package editor

import "dayflow/internal/domain"

// DefaultHistoryLimit bounds each undo/redo stack.
const DefaultHistoryLimit = 50

// ─────────────────────────────────────────────────────────────
// History — bounded linear undo/redo over whole-page snapshots
// ─────────────────────────────────────────────────────────────

// History holds past and future page snapshots around the live page owned
// by the Session. Snapshots are entire immutable page values; there are no
// partial deltas. Both stacks are trimmed to the limit on push.
type History struct {
	limit  int
	past   []domain.Page
	future []domain.Page
}

// NewHistory creates a history bounded to limit entries per stack.
// A non-positive limit falls back to DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Push records the page that was current before a mutation. The redo stack
// is cleared: a new edit forks away from any undone states.
func (h *History) Push(prev domain.Page) {
	h.past = append(h.past, prev)
	if len(h.past) > h.limit {
		h.past = h.past[len(h.past)-h.limit:]
	}
	h.future = nil
}

// Undo pops the most recent past snapshot, pushing current onto the front
// of the future stack. Returns false when there is nothing to undo.
func (h *History) Undo(current domain.Page) (domain.Page, bool) {
	if len(h.past) == 0 {
		return domain.Page{}, false
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append([]domain.Page{current}, h.future...)
	if len(h.future) > h.limit {
		h.future = h.future[:h.limit]
	}
	return prev, true
}

// Redo pops the first future snapshot, pushing current onto the end of the
// past stack. Returns false when there is nothing to redo.
func (h *History) Redo(current domain.Page) (domain.Page, bool) {
	if len(h.future) == 0 {
		return domain.Page{}, false
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, current)
	if len(h.past) > h.limit {
		h.past = h.past[len(h.past)-h.limit:]
	}
	return next, true
}

// Reset discards both stacks. Called when a different page is loaded.
func (h *History) Reset() {
	h.past = nil
	h.future = nil
}

// CanUndo reports whether an undo is possible.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether a redo is possible.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Depth returns the current stack sizes, for diagnostics.
func (h *History) Depth() (past, future int) {
	return len(h.past), len(h.future)
}

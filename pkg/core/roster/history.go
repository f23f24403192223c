package roster

import "github.com/lucabaldini/turnario/pkg/core/model"

// DefaultHistoryCapacity is the undo depth used when none is configured
const DefaultHistoryCapacity = 50

// History is a bounded undo/redo stack of full roster snapshots.
// The topmost undo entry always mirrors the current live state, so undo
// needs at least two entries to have an effect: it pops the current
// state onto the redo stack and restores the one beneath it.
//
// Full deep copies are acceptable at this scale (≤31 days × operator
// count per month).
type History struct {
	capacity  int
	undoStack []model.MonthlyRoster
	redoStack []model.MonthlyRoster
}

// NewHistory creates a history with the given capacity. Non-positive
// capacities fall back to the default.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{capacity: capacity}
}

// Len returns the number of undo entries
func (h *History) Len() int {
	return len(h.undoStack)
}

// Snapshot records a deep copy of the roster as the new current state.
// Any redo entries are discarded, and the oldest undo entry is evicted
// once capacity is exceeded.
func (h *History) Snapshot(roster model.MonthlyRoster) {
	h.redoStack = h.redoStack[:0]

	if len(h.undoStack) >= h.capacity {
		h.undoStack = h.undoStack[1:]
	}

	h.undoStack = append(h.undoStack, roster.Clone())
}

// Undo pops the current state onto the redo stack and returns a copy of
// the prior state. Returns false when fewer than two entries exist.
func (h *History) Undo() (model.MonthlyRoster, bool) {
	if len(h.undoStack) < 2 {
		return nil, false
	}

	top := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, top)

	restored := h.undoStack[len(h.undoStack)-1]
	return restored.Clone(), true
}

// Redo pops the most recently undone state, pushes it back onto the undo
// stack, and returns a copy of it. Returns false when the redo stack is
// empty.
func (h *History) Redo() (model.MonthlyRoster, bool) {
	if len(h.redoStack) == 0 {
		return nil, false
	}

	top := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, top)

	return top.Clone(), true
}

// CanUndo reports whether undo would restore a prior state
func (h *History) CanUndo() bool {
	return len(h.undoStack) >= 2
}

// CanRedo reports whether redo has a state to reapply
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

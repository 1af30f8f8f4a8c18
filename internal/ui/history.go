package ui

import "github.com/mverhaert/millcode/internal/model"

const defaultMaxDepth = 50

// Snapshot captures the job's operation list at a point in time.
type Snapshot struct {
	Operations []model.Operation
	Label      string // Human-readable description (e.g. "Add Operation")
}

// History manages undo/redo stacks of job snapshots.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

// NewHistory creates a History with the default max depth of 50.
func NewHistory() *History {
	return &History{
		maxDepth: defaultMaxDepth,
	}
}

// Push saves a snapshot onto the undo stack and clears the redo stack.
// This should be called before the modification is applied.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo pops the most recent snapshot from the undo stack and pushes
// the current state onto the redo stack. Returns the snapshot to restore
// and true, or an empty snapshot and false if nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo pops the most recent snapshot from the redo stack and pushes
// the current state onto the undo stack. Returns the snapshot to restore
// and true, or an empty snapshot and false if nothing to redo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)
	return last, true
}

// CanUndo returns true if there is at least one snapshot to undo.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if there is at least one snapshot to redo.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// copyOperations returns a deep copy of an operation slice, including the
// parameter records the operations point at.
func copyOperations(ops []model.Operation) []model.Operation {
	if ops == nil {
		return nil
	}
	cp := make([]model.Operation, len(ops))
	for i, op := range ops {
		cp[i] = op
		if op.Pocket != nil {
			p := *op.Pocket
			cp[i].Pocket = &p
		}
		if op.Thread != nil {
			p := *op.Thread
			cp[i].Thread = &p
		}
		if op.Drill != nil {
			p := *op.Drill
			p.Positions = append([]model.Point2D(nil), op.Drill.Positions...)
			cp[i].Drill = &p
		}
	}
	return cp
}

// MakeSnapshot creates a snapshot from the current operation list with a
// label.
func MakeSnapshot(ops []model.Operation, label string) Snapshot {
	return Snapshot{
		Operations: copyOperations(ops),
		Label:      label,
	}
}

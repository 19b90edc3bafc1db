// Package history provides snapshot-based undo/redo for the drawing surface.
package history

import (
	"MeetBoard/internal/logger"
	"MeetBoard/internal/surface"
)

// Restorer is the surface the engine rewinds.
type Restorer interface {
	LoadSnapshot(s surface.Snapshot)
	Reset()
}

// Engine keeps two stacks of full-surface snapshots. The top of the undo
// stack is always the snapshot currently shown.
type Engine struct {
	target     Restorer
	undoStack  []surface.Snapshot
	redoStack  []surface.Snapshot
	maxHistory int
	base       surface.Snapshot // evicted state undo falls back to, zero means blank

	// OnChange is called after every mutation with the new stack depths.
	OnChange func(undoDepth, redoDepth int)
}

// NewEngine creates an engine that restores target. maxHistory <= 0 keeps
// every snapshot until Clear.
func NewEngine(target Restorer, maxHistory int) *Engine {
	if maxHistory < 0 {
		maxHistory = 0
	}
	return &Engine{target: target, maxHistory: maxHistory}
}

// RecordChange pushes a committed snapshot and drops any redo history.
func (e *Engine) RecordChange(s surface.Snapshot) {
	e.undoStack = append(e.undoStack, s)
	e.redoStack = e.redoStack[:0]

	if e.maxHistory > 0 && len(e.undoStack) > e.maxHistory {
		// The oldest entry becomes the floor that undo can reach.
		e.base = e.undoStack[0]
		e.undoStack = append(e.undoStack[:0], e.undoStack[1:]...)
	}

	logger.DebugTagf("history", "Recorded snapshot %d. Undo: %d, Redo: %d", s.Seq(), len(e.undoStack), len(e.redoStack))
	e.changed()
}

// Undo moves the newest snapshot to the redo stack and shows the one below
// it, or the blank surface. It reports whether anything happened.
func (e *Engine) Undo() bool {
	if len(e.undoStack) == 0 {
		logger.DebugTagf("history", "Nothing to undo.")
		return false
	}

	last := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	e.redoStack = append(e.redoStack, last)

	if e.target != nil {
		switch {
		case len(e.undoStack) > 0:
			e.target.LoadSnapshot(e.undoStack[len(e.undoStack)-1])
		case !e.base.IsZero():
			e.target.LoadSnapshot(e.base)
		default:
			e.target.Reset()
		}
	}

	logger.DebugTagf("history", "Undid snapshot %d. Undo: %d, Redo: %d", last.Seq(), len(e.undoStack), len(e.redoStack))
	e.changed()
	return true
}

// Redo re-applies the most recently undone snapshot and pushes it back onto
// the undo stack. It reports whether anything happened.
func (e *Engine) Redo() bool {
	if len(e.redoStack) == 0 {
		logger.DebugTagf("history", "Nothing to redo.")
		return false
	}

	next := e.redoStack[len(e.redoStack)-1]
	e.redoStack = e.redoStack[:len(e.redoStack)-1]
	e.undoStack = append(e.undoStack, next)

	if e.target != nil {
		e.target.LoadSnapshot(next)
	}

	logger.DebugTagf("history", "Redid snapshot %d. Undo: %d, Redo: %d", next.Seq(), len(e.undoStack), len(e.redoStack))
	e.changed()
	return true
}

// Clear empties both stacks and blanks the surface in one step.
func (e *Engine) Clear() {
	e.undoStack = nil
	e.redoStack = nil
	e.base = surface.Snapshot{}
	if e.target != nil {
		e.target.Reset()
	}
	logger.DebugTagf("history", "Cleared.")
	e.changed()
}

func (e *Engine) CanUndo() bool { return len(e.undoStack) > 0 }
func (e *Engine) CanRedo() bool { return len(e.redoStack) > 0 }

// Depths returns the sizes of the undo and redo stacks.
func (e *Engine) Depths() (undo, redo int) {
	return len(e.undoStack), len(e.redoStack)
}

// Current is the snapshot on top of the undo stack, if any.
func (e *Engine) Current() (surface.Snapshot, bool) {
	if len(e.undoStack) == 0 {
		return surface.Snapshot{}, false
	}
	return e.undoStack[len(e.undoStack)-1], true
}

func (e *Engine) changed() {
	if e.OnChange != nil {
		e.OnChange(len(e.undoStack), len(e.redoStack))
	}
}

package board

import (
	"strings"

	"MeetBoard/internal/logger"
	"MeetBoard/internal/state"
	"MeetBoard/internal/surface"
)

// TextPendingEntry is the inline entry between a Text-mode click and its
// submission or cancellation.
type TextPendingEntry struct {
	Position state.Point
	Value    string
}

// TextPlacement maps clicks to canvas-local positions and commits submitted
// text into the surface. At most one entry is pending at a time.
type TextPlacement struct {
	pending *TextPendingEntry

	// Commit writes the text into the surface.
	Commit func(surface.TextEntry)
	// OnPendingChange reports the entry, or nil once it closes.
	OnPendingChange func(*TextPendingEntry)
}

// Pending returns a copy of the pending entry.
func (tp *TextPlacement) Pending() (TextPendingEntry, bool) {
	if tp.pending == nil {
		return TextPendingEntry{}, false
	}
	return *tp.pending, true
}

// OnSurfaceClick opens the entry at the click position relative to the
// canvas origin. A second click moves the existing entry.
func (tp *TextPlacement) OnSurfaceClick(viewport, canvasOrigin state.Point) {
	pos := viewport.Sub(canvasOrigin)
	if tp.pending == nil {
		tp.pending = &TextPendingEntry{Position: pos}
	} else {
		tp.pending.Position = pos
	}
	logger.DebugTagf("text", "Entry pending at (%.0f, %.0f)", pos.X, pos.Y)
	tp.notify()
}

// SetValue mirrors what the user has typed so far.
func (tp *TextPlacement) SetValue(v string) {
	if tp.pending == nil {
		return
	}
	tp.pending.Value = v
}

// Submit commits value if it is not blank and closes the entry either way.
// It reports whether text was committed.
func (tp *TextPlacement) Submit(value string) bool {
	if tp.pending == nil {
		return false
	}
	entry := surface.TextEntry{Position: tp.pending.Position, Value: value}
	tp.pending = nil

	committed := false
	if strings.TrimSpace(value) != "" && tp.Commit != nil {
		tp.Commit(entry)
		committed = true
	} else {
		logger.DebugTagf("text", "Discarded blank submission")
	}
	tp.notify()
	return committed
}

// Cancel closes the entry without committing.
func (tp *TextPlacement) Cancel() {
	if tp.pending == nil {
		return
	}
	tp.pending = nil
	logger.DebugTagf("text", "Entry cancelled")
	tp.notify()
}

func (tp *TextPlacement) notify() {
	if tp.OnPendingChange == nil {
		return
	}
	if tp.pending == nil {
		tp.OnPendingChange(nil)
		return
	}
	cp := *tp.pending
	tp.OnPendingChange(&cp)
}

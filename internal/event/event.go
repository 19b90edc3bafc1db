// Package event is a small synchronous publish/subscribe bus used to expose
// whiteboard state to whatever renders it.
package event

import "MeetBoard/internal/state"

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	TypeToolChanged    // tool or pen changed
	TypeSurfaceChanged // pixels changed (commit, undo, redo, clear)
	TypeHistoryChanged // stack depths changed
	TypeTextPending    // inline text entry opened, moved or closed
	TypeBoardClosed    // the board was torn down
)

func (t Type) String() string {
	switch t {
	case TypeToolChanged:
		return "tool"
	case TypeSurfaceChanged:
		return "surface"
	case TypeHistoryChanged:
		return "history"
	case TypeTextPending:
		return "text"
	case TypeBoardClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event is the structure passed through the bus.
type Event struct {
	Type Type
	Data any
}

// ToolChangedData carries the tool and pen after a transition.
type ToolChangedData struct {
	Tool state.Tool
	Pen  state.PenState
}

// SurfaceChangedData carries the area that needs repainting.
type SurfaceChangedData struct {
	Dirty state.Rect
	Seq   uint64 // sequence of the snapshot now shown, 0 when blank
}

// HistoryChangedData carries the stack depths.
type HistoryChangedData struct {
	UndoDepth int
	RedoDepth int
}

// TextPendingData describes the inline entry. Open is false once it closes.
type TextPendingData struct {
	Open     bool
	Position state.Point
	Value    string
}

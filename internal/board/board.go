// Package board owns the whiteboard state: tools, history, the drawing
// surface and inline text placement. It is driven from a single UI thread.
package board

import (
	"fmt"
	"image"

	"MeetBoard/internal/config"
	"MeetBoard/internal/event"
	"MeetBoard/internal/history"
	"MeetBoard/internal/logger"
	"MeetBoard/internal/state"
	"MeetBoard/internal/surface"
)

// Board is the single owner of a mounted whiteboard.
type Board struct {
	tools   *state.ToolController
	history *history.Engine
	surface *surface.DrawSurface
	text    *TextPlacement
	events  *event.Manager
	clock   *state.Clock

	canvas *surface.RasterCanvas // owned; released by Close
	closed bool
}

// New allocates the canvas described by cfg and wires the components.
func New(cfg config.BoardConfig) (*Board, error) {
	canvas, err := surface.NewRasterCanvas(cfg.Width, cfg.Height, state.MustParseColor(cfg.Background))
	if err != nil {
		return nil, fmt.Errorf("failed to create board canvas: %w", err)
	}
	b := newBoard(canvas, cfg)
	b.canvas = canvas
	logger.InfoTagf("board", "Board mounted: %dx%d, session %s", cfg.Width, cfg.Height, b.clock.Session())
	return b, nil
}

func newBoard(canvas surface.Canvas, cfg config.BoardConfig) *Board {
	b := &Board{
		tools:  state.NewToolController(cfg.PenDefaults()),
		events: event.NewManager(),
		clock:  state.NewClock(),
		text:   &TextPlacement{},
	}
	b.surface = surface.NewDrawSurface(canvas, b.clock, cfg.FontSize)
	b.history = history.NewEngine(b.surface, cfg.MaxHistory)

	b.tools.OnChange = func(tool state.Tool, pen state.PenState) {
		if tool != state.ToolText {
			b.text.Cancel()
		}
		b.events.Dispatch(event.TypeToolChanged, event.ToolChangedData{Tool: tool, Pen: pen})
	}
	b.surface.OnChange = func(c surface.Change) {
		b.history.RecordChange(c.Snapshot)
		b.events.Dispatch(event.TypeSurfaceChanged, event.SurfaceChangedData{Dirty: c.Dirty, Seq: c.Snapshot.Seq()})
	}
	b.history.OnChange = func(undo, redo int) {
		b.events.Dispatch(event.TypeHistoryChanged, event.HistoryChangedData{UndoDepth: undo, RedoDepth: redo})
	}
	b.text.Commit = func(entry surface.TextEntry) {
		b.surface.CommitText(entry, b.tools.Pen().Color)
	}
	b.text.OnPendingChange = func(e *TextPendingEntry) {
		data := event.TextPendingData{}
		if e != nil {
			data = event.TextPendingData{Open: true, Position: e.Position, Value: e.Value}
		}
		b.events.Dispatch(event.TypeTextPending, data)
	}
	return b
}

// Close releases the canvas. Every later operation is a no-op.
func (b *Board) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.text.Cancel()
	b.surface.Release()
	b.events.Dispatch(event.TypeBoardClosed, nil)
	logger.InfoTagf("board", "Board %s closed", b.clock.Session())
	if b.canvas != nil {
		return b.canvas.Close()
	}
	return nil
}

// Events is the subscription point for renderers.
func (b *Board) Events() *event.Manager { return b.events }

// Session identifies this board instance.
func (b *Board) Session() string { return b.clock.Session() }

func (b *Board) Tool() state.Tool           { return b.tools.Tool() }
func (b *Board) Pen() state.PenState        { return b.tools.Pen() }
func (b *Board) Brush() state.Brush         { return b.tools.Brush() }
func (b *Board) PickerOpen() bool           { return b.tools.PickerOpen() }
func (b *Board) CanUndo() bool              { return b.history.CanUndo() }
func (b *Board) CanRedo() bool              { return b.history.CanRedo() }
func (b *Board) Depths() (int, int)         { return b.history.Depths() }
func (b *Board) Image() image.Image         { return b.surface.Image() }
func (b *Board) Bounds() state.Rect         { return b.surface.Bounds() }
func (b *Board) Snapshot() surface.Snapshot { return b.surface.Snapshot() }

// PendingText returns the inline entry, if one is open.
func (b *Board) PendingText() (TextPendingEntry, bool) { return b.text.Pending() }

// SelectTool switches the interaction mode. Leaving Text drops any pending entry.
func (b *Board) SelectTool(t state.Tool) {
	if b.closed {
		return
	}
	b.tools.SelectTool(t)
}

// SetColor confirms a pen colour from the picker.
func (b *Board) SetColor(c state.Color) {
	if b.closed {
		return
	}
	b.tools.SetColor(c)
}

func (b *Board) ToggleDrawErase() {
	if b.closed {
		return
	}
	b.tools.ToggleDrawErase()
}

func (b *Board) ToggleColorPicker() {
	if b.closed {
		return
	}
	b.tools.ToggleColorPicker()
}

func (b *Board) CloseColorPicker() {
	if b.closed {
		return
	}
	b.tools.CloseColorPicker()
}

// PointerDown starts a stroke in Draw mode. In Text mode it is a placement
// click; viewport and origin are both in window coordinates.
func (b *Board) PointerDown(viewport, canvasOrigin state.Point) {
	if b.closed {
		return
	}
	switch {
	case b.tools.RoutesStrokes():
		b.surface.BeginStroke(viewport.Sub(canvasOrigin), b.tools.Brush())
		b.events.Dispatch(event.TypeSurfaceChanged, event.SurfaceChangedData{Dirty: b.surface.Bounds()})
	default:
		b.OnSurfaceClick(viewport, canvasOrigin)
	}
}

// OnSurfaceClick opens or moves the inline text entry. It is ignored
// outside Text mode.
func (b *Board) OnSurfaceClick(viewport, canvasOrigin state.Point) {
	if b.closed || b.tools.Tool() != state.ToolText {
		return
	}
	b.text.OnSurfaceClick(viewport, canvasOrigin)
}

// PointerMove extends the stroke in flight.
func (b *Board) PointerMove(viewport, canvasOrigin state.Point) {
	if b.closed || !b.surface.Stroking() {
		return
	}
	b.surface.ExtendStroke(viewport.Sub(canvasOrigin))
	b.events.Dispatch(event.TypeSurfaceChanged, event.SurfaceChangedData{Dirty: b.surface.Bounds()})
}

// PointerUp completes the stroke in flight, recording one history entry.
func (b *Board) PointerUp() {
	if b.closed {
		return
	}
	b.surface.EndStroke()
}

// SetTextValue mirrors the inline entry's contents.
func (b *Board) SetTextValue(v string) {
	if b.closed {
		return
	}
	b.text.SetValue(v)
}

// SubmitText commits value at the pending position. Blank values are
// discarded without a history entry.
func (b *Board) SubmitText(value string) bool {
	if b.closed {
		return false
	}
	return b.text.Submit(value)
}

// CancelText closes the inline entry without committing.
func (b *Board) CancelText() {
	if b.closed {
		return
	}
	b.text.Cancel()
}

func (b *Board) Undo() {
	if b.closed {
		return
	}
	if b.history.Undo() {
		b.surfaceRestored()
	}
}

func (b *Board) Redo() {
	if b.closed {
		return
	}
	if b.history.Redo() {
		b.surfaceRestored()
	}
}

// Clear blanks the surface and empties both history stacks.
func (b *Board) Clear() {
	if b.closed {
		return
	}
	b.history.Clear()
	b.surfaceRestored()
}

func (b *Board) surfaceRestored() {
	var seq uint64
	if cur, ok := b.history.Current(); ok {
		seq = cur.Seq()
	}
	b.events.Dispatch(event.TypeSurfaceChanged, event.SurfaceChangedData{Dirty: b.surface.Bounds(), Seq: seq})
}

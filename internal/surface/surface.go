// Package surface renders strokes and text onto a canvas and reports each
// completed change as a full-surface snapshot.
package surface

import (
	"image"

	"MeetBoard/internal/logger"
	"MeetBoard/internal/state"
)

// TextEntry is a committed piece of text at a canvas-local position.
type TextEntry struct {
	Position state.Point
	Value    string
}

// Change describes one committed gesture.
type Change struct {
	Snapshot Snapshot
	Dirty    state.Rect // area touched by the gesture
}

// DrawSurface accepts pointer strokes and text commits and renders them in
// immediate mode. A snapshot is taken once per completed gesture.
type DrawSurface struct {
	canvas   Canvas
	clock    *state.Clock
	fontSize float64

	stroke []state.Point // points of the gesture in flight, nil when idle
	brush  state.Brush

	// OnChange is called exactly once per completed stroke or text commit.
	OnChange func(Change)
}

func NewDrawSurface(canvas Canvas, clock *state.Clock, fontSize float64) *DrawSurface {
	return &DrawSurface{canvas: canvas, clock: clock, fontSize: fontSize}
}

// Release drops the canvas handle. Every later call is a no-op.
func (s *DrawSurface) Release() {
	s.canvas = nil
	s.stroke = nil
}

// Stroking reports whether a gesture is in flight.
func (s *DrawSurface) Stroking() bool { return s.stroke != nil }

// BeginStroke starts a gesture with brush and draws its first dot.
func (s *DrawSurface) BeginStroke(p state.Point, brush state.Brush) {
	if s.canvas == nil {
		return
	}
	s.brush = brush
	s.stroke = []state.Point{p}
	s.canvas.Draw(s.stroke, brush.Color, brush.Radius)
}

// ExtendStroke draws the segment from the previous point to p.
func (s *DrawSurface) ExtendStroke(p state.Point) {
	if s.canvas == nil || s.stroke == nil {
		return
	}
	prev := s.stroke[len(s.stroke)-1]
	s.stroke = append(s.stroke, p)
	s.canvas.Draw([]state.Point{prev, p}, s.brush.Color, s.brush.Radius)
}

// EndStroke completes the gesture and emits one change.
func (s *DrawSurface) EndStroke() {
	if s.canvas == nil || s.stroke == nil {
		return
	}
	dirty := state.Bounds(s.stroke, s.brush.Radius+1)
	logger.DebugTagf("surface", "Stroke finished: %d points, brush %v r=%v", len(s.stroke), s.brush.Color, s.brush.Radius)
	s.stroke = nil
	s.emit(dirty)
}

// CommitText rasterizes entry in colour c and emits one change.
func (s *DrawSurface) CommitText(entry TextEntry, c state.Color) {
	if s.canvas == nil {
		return
	}
	s.canvas.FillText(entry.Value, entry.Position.X, entry.Position.Y, c, s.fontSize)
	// Rough glyph box; only used as a refresh hint.
	dirty := state.Rect{
		Min: state.Point{X: entry.Position.X, Y: entry.Position.Y - s.fontSize},
		Max: state.Point{X: entry.Position.X + s.fontSize*float64(len(entry.Value)), Y: entry.Position.Y + s.fontSize/2},
	}
	logger.DebugTagf("surface", "Text committed at (%.0f, %.0f): %q", entry.Position.X, entry.Position.Y, entry.Value)
	s.emit(dirty)
}

// LoadSnapshot restores the surface, abandoning any gesture in flight.
func (s *DrawSurface) LoadSnapshot(snap Snapshot) {
	if s.canvas == nil {
		return
	}
	s.stroke = nil
	s.canvas.LoadSnapshot(snap)
}

// Reset returns the surface to blank, abandoning any gesture in flight.
func (s *DrawSurface) Reset() {
	if s.canvas == nil {
		return
	}
	s.stroke = nil
	s.canvas.Clear()
}

// Snapshot captures the current surface. It returns the zero Snapshot once released.
func (s *DrawSurface) Snapshot() Snapshot {
	if s.canvas == nil {
		return Snapshot{}
	}
	return s.canvas.Snapshot(s.clock.Tick())
}

// Image returns the current pixels, or nil once released.
func (s *DrawSurface) Image() image.Image {
	if s.canvas == nil {
		return nil
	}
	return s.canvas.Image()
}

// Bounds is the full canvas rectangle.
func (s *DrawSurface) Bounds() state.Rect {
	if s.canvas == nil {
		return state.Rect{}
	}
	w, h := s.canvas.Size()
	return state.Rect{Max: state.Point{X: float64(w), Y: float64(h)}}
}

func (s *DrawSurface) emit(dirty state.Rect) {
	change := Change{Snapshot: s.Snapshot(), Dirty: dirty}
	if s.OnChange != nil {
		s.OnChange(change)
	}
}

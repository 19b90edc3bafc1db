package state

import "MeetBoard/internal/logger"

// Tool is the high-level interaction mode. Exactly one is active.
type Tool int

const (
	ToolDraw Tool = iota
	ToolText
	ToolColorPicker
)

func (t Tool) String() string {
	switch t {
	case ToolDraw:
		return "draw"
	case ToolText:
		return "text"
	case ToolColorPicker:
		return "color-picker"
	default:
		return "unknown"
	}
}

// PenMode is the Draw/Erase sub-state of the pen.
type PenMode int

const (
	PenDraw PenMode = iota
	PenErase
)

func (m PenMode) String() string {
	if m == PenErase {
		return "erase"
	}
	return "draw"
}

// PenState holds the chosen colour and the draw/erase flag.
type PenState struct {
	Color Color
	Mode  PenMode
}

// Brush is what a stroke is actually rendered with.
type Brush struct {
	Color  Color
	Radius float64
}

// Defaults configures a ToolController at mount time.
type Defaults struct {
	Color       Color
	Background  Color
	DrawRadius  float64
	EraseRadius float64
}

// DefaultDefaults is black ink on white, radius 2 to draw and 10 to erase.
func DefaultDefaults() Defaults {
	return Defaults{Color: Black, Background: White, DrawRadius: 2, EraseRadius: 10}
}

// ToolController selects the active tool and derives the effective brush.
// All transitions are total; none can fail.
type ToolController struct {
	tool     Tool
	previous Tool // tool to return to when the picker is dismissed
	pen      PenState
	defaults Defaults

	// OnChange is called after every transition with the new tool and pen.
	OnChange func(tool Tool, pen PenState)
}

func NewToolController(d Defaults) *ToolController {
	return &ToolController{
		tool:     ToolDraw,
		previous: ToolDraw,
		pen:      PenState{Color: d.Color, Mode: PenDraw},
		defaults: d,
	}
}

func (tc *ToolController) Tool() Tool    { return tc.tool }
func (tc *ToolController) Pen() PenState { return tc.pen }

// PickerOpen reports whether the colour picker is showing.
func (tc *ToolController) PickerOpen() bool { return tc.tool == ToolColorPicker }

// Background is the colour the eraser paints with and the blank surface fill.
func (tc *ToolController) Background() Color { return tc.defaults.Background }

// Brush returns the effective stroke parameters for the current pen mode.
func (tc *ToolController) Brush() Brush {
	if tc.pen.Mode == PenErase {
		return Brush{Color: tc.defaults.Background, Radius: tc.defaults.EraseRadius}
	}
	return Brush{Color: tc.pen.Color, Radius: tc.defaults.DrawRadius}
}

// RoutesStrokes reports whether pointer drags should become strokes.
func (tc *ToolController) RoutesStrokes() bool { return tc.tool == ToolDraw }

// SelectTool activates t. Selecting any tool other than the picker closes it.
func (tc *ToolController) SelectTool(t Tool) {
	if t == ToolColorPicker && tc.tool != ToolColorPicker {
		tc.previous = tc.tool
	}
	tc.tool = t
	logger.DebugTagf("tools", "Tool selected: %v", t)
	tc.changed()
}

// ToggleColorPicker is the format action: it opens the picker, or closes it
// and returns to the tool that was active before.
func (tc *ToolController) ToggleColorPicker() {
	if tc.tool == ToolColorPicker {
		tc.CloseColorPicker()
		return
	}
	tc.SelectTool(ToolColorPicker)
}

// CloseColorPicker dismisses the picker without choosing a colour.
func (tc *ToolController) CloseColorPicker() {
	if tc.tool != ToolColorPicker {
		return
	}
	tc.tool = tc.previous
	logger.DebugTagf("tools", "Colour picker dismissed, back to %v", tc.tool)
	tc.changed()
}

// SetColor confirms a colour. It always re-arms drawing: the picker closes,
// the tool becomes Draw and the pen leaves erase mode.
func (tc *ToolController) SetColor(c Color) {
	tc.pen.Color = c
	tc.pen.Mode = PenDraw
	tc.tool = ToolDraw
	tc.previous = ToolDraw
	logger.DebugTagf("tools", "Pen colour set to %v", c)
	tc.changed()
}

// ToggleDrawErase flips the pen mode without touching the tool.
func (tc *ToolController) ToggleDrawErase() {
	if tc.pen.Mode == PenDraw {
		tc.pen.Mode = PenErase
	} else {
		tc.pen.Mode = PenDraw
	}
	logger.DebugTagf("tools", "Pen mode now %v", tc.pen.Mode)
	tc.changed()
}

func (tc *ToolController) changed() {
	if tc.OnChange != nil {
		tc.OnChange(tc.tool, tc.pen)
	}
}

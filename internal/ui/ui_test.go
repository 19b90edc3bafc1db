package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MeetBoard/internal/board"
	"MeetBoard/internal/config"
	"MeetBoard/internal/state"
)

func newTestBoard(t *testing.T) *board.Board {
	t.Helper()
	test.NewTempApp(t)
	cfg := config.NewDefaultConfig().Board
	cfg.Width, cfg.Height = 200, 120
	b, err := board.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

// press builds a mouse event at local position (x, y) on a widget whose
// origin sits at (10, 20) in the window.
func press(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{
			Position:         fyne.NewPos(x, y),
			AbsolutePosition: fyne.NewPos(x+10, y+20),
		},
		Button: desktop.MouseButtonPrimary,
	}
}

func TestPenButtonTogglesLabel(t *testing.T) {
	b := newTestBoard(t)
	tb := NewToolbar(b, nil)
	assert.Equal(t, penLabel, tb.pen.Text)

	test.Tap(tb.pen)
	assert.Equal(t, state.PenErase, b.Pen().Mode)
	assert.Equal(t, eraserLabel, tb.pen.Text)

	test.Tap(tb.pen)
	assert.Equal(t, penLabel, tb.pen.Text)
}

func TestDragRecordsStroke(t *testing.T) {
	b := newTestBoard(t)
	w := NewBoardWidget(b)
	tb := NewToolbar(b, nil)
	assert.True(t, tb.undo.Disabled())

	w.MouseDown(press(10, 10))
	w.Dragged(&fyne.DragEvent{PointEvent: press(60, 40).PointEvent, Dragged: fyne.NewDelta(50, 30)})
	w.DragEnd()
	w.MouseUp(press(60, 40))

	undo, _ := b.Depths()
	assert.Equal(t, 1, undo)
	assert.False(t, tb.undo.Disabled())

	test.Tap(tb.undo)
	assert.False(t, b.CanUndo())
	assert.False(t, tb.redo.Disabled())
}

func TestInlineTextEntry(t *testing.T) {
	b := newTestBoard(t)
	w := NewBoardWidget(b)
	tb := NewToolbar(b, nil)

	test.Tap(tb.text)
	w.MouseDown(press(100, 50))
	w.MouseUp(press(100, 50))

	entry, ok := b.PendingText()
	require.True(t, ok)
	assert.Equal(t, state.Point{X: 100, Y: 50}, entry.Position)
	assert.True(t, w.entry.Visible())
	assert.False(t, b.CanUndo())

	test.Type(w.entry, "Hello")
	entry, _ = b.PendingText()
	assert.Equal(t, "Hello", entry.Value)

	w.entry.OnSubmitted(w.entry.Text)
	assert.False(t, w.entry.Visible())
	assert.True(t, b.CanUndo())
}

func TestEscapeCancelsText(t *testing.T) {
	b := newTestBoard(t)
	w := NewBoardWidget(b)
	b.SelectTool(state.ToolText)
	w.MouseDown(press(30, 30))
	require.True(t, w.entry.Visible())

	w.entry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	_, ok := b.PendingText()
	assert.False(t, ok)
	assert.False(t, w.entry.Visible())
	assert.False(t, b.CanUndo())
}

func TestSwatchSetsColor(t *testing.T) {
	b := newTestBoard(t)
	b.SelectTool(state.ToolText)
	red := state.MustParseColor("#ff0000")

	test.Tap(newColorSwatch(red, b.SetColor))
	assert.Equal(t, red, b.Pen().Color)
	assert.Equal(t, state.ToolDraw, b.Tool())
}

func TestFormatWithoutWindowLeavesPickerState(t *testing.T) {
	b := newTestBoard(t)
	tb := NewToolbar(b, nil)

	test.Tap(tb.format)
	assert.True(t, b.PickerOpen())
	assert.Equal(t, widget.HighImportance, tb.format.Importance)
	test.Tap(tb.format)
	assert.False(t, b.PickerOpen())
}

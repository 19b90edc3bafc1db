package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"MeetBoard/internal/board"
	"MeetBoard/internal/event"
	"MeetBoard/internal/export"
	"MeetBoard/internal/logger"
	"MeetBoard/internal/state"
)

const (
	penLabel    = "Pen (Switch to Eraser)"
	eraserLabel = "Eraser (Switch to Pen)"
)

// swatches are the quick colours under the tool column.
var swatches = []string{"#000000", "#ff0000", "#00a000", "#0000ff", "#ffcc00"}

type colorSwatch struct {
	widget.BaseWidget
	Color    state.Color
	OnTapped func(state.Color)
}

func newColorSwatch(c state.Color, tapped func(state.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color.NRGBA())
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// Toolbar is the button column beside the board. Buttons reflect the
// board's tool and history through its events.
type Toolbar struct {
	board  *board.Board
	window fyne.Window

	pen    *widget.Button
	undo   *widget.Button
	redo   *widget.Button
	clear  *widget.Button
	text   *widget.Button
	draw   *widget.Button
	format *widget.Button
	save   *widget.Button
	status *widget.Label

	object fyne.CanvasObject
}

// NewToolbar builds the tool column. window parents the picker and file
// dialogs; it may be nil when no dialogs are needed.
func NewToolbar(b *board.Board, window fyne.Window) *Toolbar {
	t := &Toolbar{board: b, window: window, status: widget.NewLabel("Ready")}

	t.pen = widget.NewButtonWithIcon(penLabel, theme.DocumentCreateIcon(), b.ToggleDrawErase)
	t.undo = widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), b.Undo)
	t.redo = widget.NewButtonWithIcon("Redo", theme.ContentRedoIcon(), b.Redo)
	t.clear = widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), b.Clear)
	t.text = widget.NewButton("Text", func() { b.SelectTool(state.ToolText) })
	t.draw = widget.NewButton("Draw", func() { b.SelectTool(state.ToolDraw) })
	t.format = widget.NewButtonWithIcon("Format", theme.ColorPaletteIcon(), t.toggleColorPicker)
	t.save = widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), t.showExport)

	colorBox := container.NewGridWithColumns(len(swatches))
	for _, hex := range swatches {
		colorBox.Add(newColorSwatch(state.MustParseColor(hex), b.SetColor))
	}

	t.object = container.NewVBox(
		t.pen,
		t.undo,
		t.redo,
		t.clear,
		widget.NewSeparator(),
		t.text,
		t.draw,
		t.format,
		colorBox,
		widget.NewSeparator(),
		t.save,
		layout.NewSpacer(),
		t.status,
	)

	b.Events().Subscribe(func(event.Event) { t.sync() }, event.TypeToolChanged, event.TypeHistoryChanged)
	t.sync()
	return t
}

// Object returns the widget tree to place in a window.
func (t *Toolbar) Object() fyne.CanvasObject { return t.object }

// SetStatus updates the status line. It is safe to call from any goroutine.
func (t *Toolbar) SetStatus(text string) {
	fyne.Do(func() { t.status.SetText(text) })
}

func (t *Toolbar) sync() {
	pen := t.board.Pen()
	if pen.Mode == state.PenErase {
		t.pen.SetText(eraserLabel)
	} else {
		t.pen.SetText(penLabel)
	}
	setEnabled(t.undo, t.board.CanUndo())
	setEnabled(t.redo, t.board.CanRedo())

	tool := t.board.Tool()
	highlight(t.draw, tool == state.ToolDraw)
	highlight(t.text, tool == state.ToolText)
	highlight(t.format, tool == state.ToolColorPicker)

	undo, redo := t.board.Depths()
	t.status.SetText(fmt.Sprintf("%v | %v %v | undo %d redo %d", tool, pen.Mode, pen.Color, undo, redo))
}

func (t *Toolbar) toggleColorPicker() {
	t.board.ToggleColorPicker()
	if !t.board.PickerOpen() || t.window == nil {
		return
	}
	picker := dialog.NewColorPicker("Pen colour", "Choose the pen colour", func(c color.Color) {
		t.board.SetColor(state.FromColor(c))
	}, t.window)
	picker.Advanced = true
	picker.SetOnClosed(t.board.CloseColorPicker)
	picker.Show()
}

func (t *Toolbar) showExport() {
	if t.window == nil {
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			logger.Errorf("Export dialog failed: %v", err)
			t.SetStatus("Export failed")
			return
		}
		if writer == nil {
			return
		}
		t.exportTo(writer)
	}, t.window)
	d.SetFileName("board.png")
	d.Show()
}

func (t *Toolbar) exportTo(writer fyne.URIWriteCloser) {
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Warnf("Error closing export writer: %v", err)
		}
	}()

	name := writer.URI().Name()
	if err := export.Write(writer, t.board.Image(), export.FormatFor(name)); err != nil {
		logger.Errorf("Export to %s failed: %v", name, err)
		t.SetStatus("Error writing file")
		return
	}
	logger.InfoTagf("export", "Board exported to %s", writer.URI())
	t.SetStatus(fmt.Sprintf("Exported %s", name))
}

func setEnabled(b *widget.Button, on bool) {
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}

func highlight(b *widget.Button, on bool) {
	want := widget.MediumImportance
	if on {
		want = widget.HighImportance
	}
	if b.Importance != want {
		b.Importance = want
		b.Refresh()
	}
}

package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"MeetBoard/internal/board"
	"MeetBoard/internal/event"
	"MeetBoard/internal/logger"
	"MeetBoard/internal/state"
)

// textEntrySize is the on-screen size of the inline text field.
var textEntrySize = fyne.NewSize(220, 36)

// BoardWidget shows the board's pixels and turns pointer input into board
// operations. Positions are passed in window coordinates together with the
// widget's origin so the board can map them to canvas pixels.
type BoardWidget struct {
	widget.BaseWidget
	board *board.Board

	image   *canvas.Image
	entry   *inlineEntry
	overlay *fyne.Container

	pressed bool
	unsubs  []func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

func NewBoardWidget(b *board.Board) *BoardWidget {
	w := &BoardWidget{board: b}
	w.ExtendBaseWidget(w)

	w.image = canvas.NewImageFromImage(b.Image())
	w.image.FillMode = canvas.ImageFillOriginal
	w.image.ScaleMode = canvas.ImageScalePixels

	w.entry = newInlineEntry()
	w.entry.OnChanged = b.SetTextValue
	w.entry.OnSubmitted = func(v string) { b.SubmitText(v) }
	w.entry.onCancel = b.CancelText
	w.entry.Resize(textEntrySize)
	w.entry.Hide()
	w.overlay = container.NewWithoutLayout(w.entry)

	w.unsubs = append(w.unsubs,
		b.Events().Subscribe(func(event.Event) { w.refreshImage() }, event.TypeSurfaceChanged),
		b.Events().Subscribe(w.onTextPending, event.TypeTextPending),
		b.Events().Subscribe(func(event.Event) { w.detach() }, event.TypeBoardClosed),
	)
	return w
}

func (w *BoardWidget) refreshImage() {
	img := w.board.Image()
	if img == nil {
		return
	}
	w.image.Image = img
	w.image.Refresh()
}

func (w *BoardWidget) onTextPending(e event.Event) {
	data, _ := e.Data.(event.TextPendingData)
	if !data.Open {
		w.entry.Hide()
		w.entry.SetText("")
		return
	}
	// The position is the text baseline; lift the field so its text sits on it.
	w.entry.Move(fyne.NewPos(float32(data.Position.X), float32(data.Position.Y)-textEntrySize.Height/2-4))
	if !w.entry.Visible() {
		w.entry.SetText(data.Value)
		w.entry.Show()
	}
	if c := fyne.CurrentApp().Driver().CanvasForObject(w); c != nil {
		c.Focus(w.entry)
	}
}

func (w *BoardWidget) detach() {
	for _, unsub := range w.unsubs {
		unsub()
	}
	w.unsubs = nil
	w.entry.Hide()
}

// pointer returns the event position and the widget origin, both in
// window coordinates.
func pointer(ev fyne.PointEvent) (viewport, origin state.Point) {
	viewport = state.Point{X: float64(ev.AbsolutePosition.X), Y: float64(ev.AbsolutePosition.Y)}
	origin = state.Point{
		X: float64(ev.AbsolutePosition.X - ev.Position.X),
		Y: float64(ev.AbsolutePosition.Y - ev.Position.Y),
	}
	return viewport, origin
}

func (w *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.pressed = true
	w.board.PointerDown(pointer(e.PointEvent))
}

func (w *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || !w.pressed {
		return
	}
	w.pressed = false
	w.board.PointerUp()
}

func (w *BoardWidget) Dragged(e *fyne.DragEvent) {
	if !w.pressed {
		return
	}
	w.board.PointerMove(pointer(e.PointEvent))
}

func (w *BoardWidget) DragEnd() {
	if !w.pressed {
		return
	}
	w.pressed = false
	w.board.PointerUp()
}

func (w *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (w *BoardWidget) MouseMoved(*desktop.MouseEvent) {}
func (w *BoardWidget) MouseOut()                      {}

func (w *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	if img := w.board.Image(); img != nil {
		b := img.Bounds()
		w.image.SetMinSize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
	}
	logger.DebugTagf("ui", "Board widget rendered")
	return widget.NewSimpleRenderer(container.NewStack(w.image, w.overlay))
}

// Image is the frame currently on screen.
func (w *BoardWidget) Image() image.Image { return w.image.Image }

// inlineEntry is a single-line entry that reports Escape as a cancel.
type inlineEntry struct {
	widget.Entry
	onCancel func()
}

func newInlineEntry() *inlineEntry {
	e := &inlineEntry{}
	e.ExtendBaseWidget(e)
	return e
}

func (e *inlineEntry) TypedKey(k *fyne.KeyEvent) {
	if k.Name == fyne.KeyEscape && e.onCancel != nil {
		e.onCancel()
		return
	}
	e.Entry.TypedKey(k)
}

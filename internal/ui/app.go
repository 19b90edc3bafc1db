package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"MeetBoard/internal/board"
	"MeetBoard/internal/logger"
)

// Options configures the application window.
type Options struct {
	Title string
	// Status is shown in the tool column on start, e.g. the mirror link.
	Status string
}

// RunApp shows b in a window and blocks until it is closed. The board is
// closed with the window.
func RunApp(b *board.Board, opts Options) {
	if opts.Title == "" {
		opts.Title = "Meet Board"
	}
	a := app.New()
	w := a.NewWindow(opts.Title)

	bw := NewBoardWidget(b)
	tb := NewToolbar(b, w)
	if opts.Status != "" {
		tb.status.SetText(opts.Status)
	}

	w.SetContent(container.NewBorder(nil, nil, tb.Object(), nil, container.NewScroll(bw)))
	w.Resize(fyne.NewSize(1100, 760))
	w.SetOnClosed(func() {
		if err := b.Close(); err != nil {
			logger.Warnf("Closing board: %v", err)
		}
	})
	w.ShowAndRun()
}

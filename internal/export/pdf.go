// Package export writes the current board image to disk. It is one-way:
// nothing exported here can be loaded back into a board.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"

	"MeetBoard/internal/logger"
)

// WritePDF writes img as a single page sized to the image, one point per pixel.
func WritePDF(w io.Writer, img image.Image, title string) error {
	if img == nil {
		return ErrNoImage
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode page image: %w", err)
	}

	b := img.Bounds()
	wd, ht := float64(b.Dx()), float64(b.Dy())
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	p.SetTitle(title, true)
	p.SetCreator("meetboard", true)
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("board", opt, &buf)
	p.ImageOptions("board", 0, 0, wd, ht, false, opt, 0, "")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	logger.DebugTagf("export", "PDF written: %.0fx%.0fpt", wd, ht)
	return nil
}

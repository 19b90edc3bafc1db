package surface

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"MeetBoard/internal/logger"
	"MeetBoard/internal/state"
)

// Canvas is the rendering surface the whiteboard draws on.
type Canvas interface {
	// Draw renders a run of points as a connected line. A single point is a dot.
	Draw(points []state.Point, c state.Color, radius float64)
	// FillText rasterizes value with its baseline at (x, y).
	FillText(value string, x, y float64, c state.Color, size float64)
	Snapshot(seq uint64) Snapshot
	LoadSnapshot(s Snapshot)
	// Clear fills the surface with the background colour.
	Clear()
	Size() (width, height int)
	Image() image.Image
}

// RasterCanvas is a software Canvas backed by a gg context.
type RasterCanvas struct {
	pm         *gg.Pixmap
	dc         *gg.Context
	background state.Color
	font       *text.FontSource
	faces      map[float64]text.Face
}

var _ Canvas = (*RasterCanvas)(nil)

// NewRasterCanvas allocates a blank canvas filled with background.
func NewRasterCanvas(width, height int, background state.Color) (*RasterCanvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load canvas font: %w", err)
	}
	pm := gg.NewPixmap(width, height)
	rc := &RasterCanvas{
		pm:         pm,
		dc:         gg.NewContext(width, height, gg.WithPixmap(pm)),
		background: background,
		font:       src,
		faces:      make(map[float64]text.Face),
	}
	rc.dc.SetLineCap(gg.LineCapRound)
	rc.dc.SetLineJoin(gg.LineJoinRound)
	rc.Clear()
	return rc, nil
}

func (rc *RasterCanvas) Draw(points []state.Point, c state.Color, radius float64) {
	if len(points) == 0 {
		return
	}
	rc.dc.SetColor(c.NRGBA())
	if len(points) == 1 {
		rc.dc.DrawCircle(points[0].X, points[0].Y, radius)
		if err := rc.dc.Fill(); err != nil {
			logger.DebugTagf("surface", "Dot fill failed: %v", err)
		}
		return
	}
	rc.dc.SetLineWidth(radius * 2)
	rc.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		rc.dc.LineTo(p.X, p.Y)
	}
	if err := rc.dc.Stroke(); err != nil {
		logger.DebugTagf("surface", "Stroke failed: %v", err)
	}
}

func (rc *RasterCanvas) FillText(value string, x, y float64, c state.Color, size float64) {
	face, ok := rc.faces[size]
	if !ok {
		face = rc.font.Face(size)
		rc.faces[size] = face
	}
	rc.dc.SetFont(face)
	rc.dc.SetColor(c.NRGBA())
	rc.dc.DrawString(value, x, y)
}

func (rc *RasterCanvas) Snapshot(seq uint64) Snapshot {
	return NewSnapshot(rc.pm.Width(), rc.pm.Height(), rc.pm.Data(), seq)
}

// LoadSnapshot replaces the pixels. Snapshots of another size are ignored.
func (rc *RasterCanvas) LoadSnapshot(s Snapshot) {
	if s.width != rc.pm.Width() || s.height != rc.pm.Height() {
		logger.WarnTagf("surface", "Ignoring %dx%d snapshot on %dx%d canvas", s.width, s.height, rc.pm.Width(), rc.pm.Height())
		return
	}
	copy(rc.pm.Data(), s.pix)
}

func (rc *RasterCanvas) Clear() {
	rc.dc.ClearWithColor(gg.FromColor(rc.background.NRGBA()))
}

func (rc *RasterCanvas) Size() (int, int) {
	return rc.pm.Width(), rc.pm.Height()
}

// Image returns a copy of the current pixels.
func (rc *RasterCanvas) Image() image.Image {
	return rc.pm.ToImage()
}

// Close releases the font source and the context.
func (rc *RasterCanvas) Close() error {
	err := rc.dc.Close()
	if cerr := rc.font.Close(); err == nil {
		err = cerr
	}
	return err
}

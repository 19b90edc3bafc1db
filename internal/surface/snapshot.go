package surface

import (
	"bytes"
	"image"
	"image/png"
	"io"

	"github.com/google/uuid"
)

// Snapshot is an immutable capture of the whole surface.
type Snapshot struct {
	id     string
	seq    uint64
	width  int
	height int
	pix    []uint8 // RGBA, 4 bytes per pixel, row-major
}

// NewSnapshot copies pix into a new snapshot.
func NewSnapshot(width, height int, pix []uint8, seq uint64) Snapshot {
	buf := make([]uint8, len(pix))
	copy(buf, pix)
	return Snapshot{
		id:     uuid.NewString(),
		seq:    seq,
		width:  width,
		height: height,
		pix:    buf,
	}
}

func (s Snapshot) ID() string   { return s.id }
func (s Snapshot) Seq() uint64  { return s.seq }
func (s Snapshot) Width() int   { return s.width }
func (s Snapshot) Height() int  { return s.height }
func (s Snapshot) IsZero() bool { return s.pix == nil }

// SameContent reports whether both snapshots hold identical pixels.
func (s Snapshot) SameContent(o Snapshot) bool {
	return s.width == o.width && s.height == o.height && bytes.Equal(s.pix, o.pix)
}

// Image returns a copy of the snapshot as an image.
func (s Snapshot) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, s.pix)
	return img
}

// EncodePNG serializes the snapshot.
func (s Snapshot) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.Image())
}

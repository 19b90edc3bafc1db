package state

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Point is a position in canvas-local pixels.
type Point struct{ X, Y float64 }

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Color is an opaque RGB colour, written as "#rrggbb".
type Color struct{ R, G, B uint8 }

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// ParseColor accepts "#rgb", "#rrggbb" and the same without the leading '#'.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return Color{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustParseColor is ParseColor for values already validated (config, literals).
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromColor drops alpha from any color.Color. Translucent colours are
// composited over white first, matching how the picker previews them.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return Color{R: n.R, G: n.G, B: n.B}
	}
	blend := func(v uint8) uint8 {
		return uint8((uint32(v)*uint32(n.A) + 255*(255-uint32(n.A))) / 255)
	}
	return Color{R: blend(n.R), G: blend(n.G), B: blend(n.B)}
}

// NRGBA returns the colour as an opaque color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Rect is an axis-aligned box in canvas pixels. The zero Rect is empty.
type Rect struct {
	Min, Max Point
}

// Empty reports whether r covers no area.
func (r Rect) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Union returns the smallest box containing r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		Min: Point{X: min(r.Min.X, o.Min.X), Y: min(r.Min.Y, o.Min.Y)},
		Max: Point{X: max(r.Max.X, o.Max.X), Y: max(r.Max.Y, o.Max.Y)},
	}
}

// Bounds returns the bounding box of points, grown by padding on every side.
func Bounds(points []Point, padding float64) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return Rect{
		Min: Point{X: minX - padding, Y: minY - padding},
		Max: Point{X: maxX + padding, Y: maxY + padding},
	}
}

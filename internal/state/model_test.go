package state

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#000000", want: Black},
		{in: "#FFFFFF", want: White},
		{in: "ff8000", want: Color{R: 255, G: 128}},
		{in: "#f00", want: Color{R: 255}},
		{in: "#12345", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "#0a0b0c", Color{10, 11, 12}.String())
}

func TestFromColor(t *testing.T) {
	assert.Equal(t, Color{R: 255}, FromColor(color.NRGBA{R: 255, A: 255}))
	assert.Equal(t, White, FromColor(color.NRGBA{A: 0}))
	assert.Equal(t, Black, FromColor(color.Black))
}

func TestBoundsAndUnion(t *testing.T) {
	r := Bounds([]Point{{10, 20}, {30, 5}, {15, 40}}, 2)
	assert.Equal(t, Rect{Min: Point{8, 3}, Max: Point{32, 42}}, r)
	assert.True(t, Bounds(nil, 5).Empty())

	u := r.Union(Rect{Min: Point{0, 0}, Max: Point{1, 1}})
	assert.Equal(t, Rect{Min: Point{0, 0}, Max: Point{32, 42}}, u)
	assert.Equal(t, r, Rect{}.Union(r))
}

func TestClockTicks(t *testing.T) {
	c := NewClock()
	assert.NotEmpty(t, c.Session())
	assert.Equal(t, uint64(1), c.Tick())
	assert.Equal(t, uint64(2), c.Tick())
}

package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		img.Set(x, 10, color.RGBA{A: 255})
	}
	return img
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatPDF, FormatFor("board.pdf"))
	assert.Equal(t, FormatPDF, FormatFor("/tmp/BOARD.PDF"))
	assert.Equal(t, FormatPNG, FormatFor("board.png"))
	assert.Equal(t, FormatPNG, FormatFor("board"))
}

func TestWritePNGRoundTrip(t *testing.T) {
	src := testImage()
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, src))

	got, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), got.Bounds())
	r, g, b, a := got.At(5, 10).RGBA()
	assert.Equal(t, [4]uint32{0, 0, 0, 0xffff}, [4]uint32{r, g, b, a})
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, testImage(), "test"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestNilImage(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WritePNG(&buf, nil), ErrNoImage)
	assert.ErrorIs(t, WritePDF(&buf, nil, ""), ErrNoImage)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.png", "out.pdf"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, testImage()))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	}
}

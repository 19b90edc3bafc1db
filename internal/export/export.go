package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"MeetBoard/internal/logger"
)

// ErrNoImage is returned when the board has no surface to export.
var ErrNoImage = errors.New("no image to export")

// Format selects the output encoding.
type Format int

const (
	FormatPNG Format = iota
	FormatPDF
)

// FormatFor picks the format from a file extension, defaulting to PNG.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return FormatPDF
	}
	return FormatPNG
}

// WritePNG encodes img losslessly.
func WritePNG(w io.Writer, img image.Image) error {
	if img == nil {
		return ErrNoImage
	}
	return png.Encode(w, img)
}

// Write encodes img in format f.
func Write(w io.Writer, img image.Image, f Format) error {
	if f == FormatPDF {
		return WritePDF(w, img, "Whiteboard")
	}
	return WritePNG(w, img)
}

// WriteFile exports img to path, choosing the format from its extension.
func WriteFile(path string, img image.Image) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	if err = Write(file, img, FormatFor(path)); err != nil {
		return err
	}
	logger.InfoTagf("export", "Board exported to %s", path)
	return nil
}

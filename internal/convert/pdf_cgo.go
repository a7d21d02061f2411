//go:build cgo

package convert

import (
	"fmt"
	"image/png"
	"os"

	"github.com/gen2brain/go-fitz"
)

// rasterizePDF renders the first page of a PDF-based file (the internal
// format of modern AI exports) at 300 DPI.
func rasterizePDF(src, dst string) error {
	doc, err := fitz.New(src)
	if err != nil {
		return fmt.Errorf("failed to open as pdf: %w", err)
	}
	defer doc.Close()

	img, err := doc.ImageDPI(0, 300)
	if err != nil {
		return fmt.Errorf("failed to render pdf page: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode rendered page: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return validateRaster(dst)
}

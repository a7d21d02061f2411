package raster

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder (first frame)
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	"github.com/anthonynsimon/bild/parallel"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Decode opens and decodes an image file using every registered decoder.
// For animated formats only the first frame is returned.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// FlattenOnWhite composites an image onto an opaque white background,
// returning a fully opaque NRGBA copy. Images without transparency come
// through unchanged apart from the representation conversion.
func FlattenOnWhite(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				// RGBA() is alpha-premultiplied 16-bit, so compositing on
				// white is channel + (65535 - alpha).
				r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				inv := 65535 - a
				i := out.PixOffset(x, y)
				out.Pix[i+0] = uint8((r + inv) >> 8)
				out.Pix[i+1] = uint8((g + inv) >> 8)
				out.Pix[i+2] = uint8((b + inv) >> 8)
				out.Pix[i+3] = 255
			}
		}
	})

	return out
}

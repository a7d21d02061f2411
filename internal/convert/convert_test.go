package convert

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/logo-colors/internal/raster"
)

// writeFile writes bytes to a file with the given name inside a temp dir.
func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// pngBytes encodes a small solid-color image as PNG.
func pngBytes(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestToRasterFile_DirectDecode(t *testing.T) {
	// Some "EPS" uploads are really rasters with the wrong extension; the
	// first strategy handles them without touching the vector paths.
	src := writeFile(t, "disguised.eps", pngBytes(t, color.NRGBA{200, 30, 30, 255}))
	dst := filepath.Join(t.TempDir(), "out.png")

	if err := ToRasterFile(src, dst); err != nil {
		t.Fatalf("ToRasterFile failed: %v", err)
	}

	img, err := raster.Decode(dst)
	if err != nil {
		t.Fatalf("converted file does not decode: %v", err)
	}
	if img.Bounds().Dx() == 0 {
		t.Error("converted file has no pixels")
	}
}

func TestToRasterFile_SVGSignatureFallback(t *testing.T) {
	// Direct decode fails on XML bytes, but the signature sniff routes the
	// file into the SVG rasterizer.
	doc := `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100" viewBox="0 0 100 100">
	<rect x="0" y="0" width="100" height="100" fill="#FF0000"/>
</svg>`
	src := writeFile(t, "vector.eps", []byte(doc))
	dst := filepath.Join(t.TempDir(), "out.png")

	if err := ToRasterFile(src, dst); err != nil {
		t.Fatalf("ToRasterFile failed: %v", err)
	}

	img, err := raster.Decode(dst)
	if err != nil {
		t.Fatalf("converted file does not decode: %v", err)
	}
	if img.Bounds().Dx() != 2000 || img.Bounds().Dy() != 2000 {
		t.Errorf("svg fallback should render at 2000x2000, got %v", img.Bounds())
	}

	// The rendered page must actually contain the rectangle's red.
	r, _, _, _ := img.At(1000, 1000).RGBA()
	if r>>8 < 200 {
		t.Errorf("expected red center pixel, got r=%d", r>>8)
	}
}

func TestToRasterFile_TotalFailureLeavesNothingBehind(t *testing.T) {
	src := writeFile(t, "broken.eps", []byte("not postscript, not xml, not an image"))
	dst := filepath.Join(t.TempDir(), "out.png")

	err := ToRasterFile(src, dst)
	if err == nil {
		t.Fatal("expected conversion to fail")
	}

	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected *ConversionError, got %T: %v", err, err)
	}
	if convErr.Detail == nil {
		t.Error("ConversionError should carry the original failure detail")
	}
	if !strings.Contains(convErr.Error(), "PostScript") {
		t.Errorf("error should carry actionable guidance, got: %v", convErr)
	}

	if _, statErr := os.Stat(dst); !os.IsNotExist(statErr) {
		t.Error("a failed conversion must not leave a temporary file behind")
	}
}

func TestToRaster_ReturnsCallerOwnedArtifact(t *testing.T) {
	src := writeFile(t, "logo.eps", pngBytes(t, color.NRGBA{10, 80, 160, 255}))

	out, err := ToRaster(src)
	if err != nil {
		t.Fatalf("ToRaster failed: %v", err)
	}
	defer os.Remove(out)

	if _, err := os.Stat(out); err != nil {
		t.Fatalf("artifact missing: %v", err)
	}

	// Distinct calls must not collide on the same temp path.
	second, err := ToRaster(src)
	if err != nil {
		t.Fatalf("second ToRaster failed: %v", err)
	}
	defer os.Remove(second)
	if second == out {
		t.Error("concurrent-safe conversion requires unique artifact paths")
	}
}

func TestHasVectorSignature(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"postscript", []byte("%!PS-Adobe-3.0 EPSF-3.0\n"), true},
		{"svg", []byte(`<svg xmlns="...">`), true},
		{"xml prolog", []byte(`<?xml version="1.0"?>`), true},
		{"binary junk", []byte{0x00, 0x01, 0x02, 0x03}, false},
		{"plain text", []byte("hello world"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "probe.eps", tt.data)
			if got := hasVectorSignature(path); got != tt.want {
				t.Errorf("hasVectorSignature = %v, want %v", got, tt.want)
			}
		})
	}
}

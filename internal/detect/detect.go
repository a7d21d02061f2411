package detect

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ironsheep/logo-colors/internal/convert"
	"github.com/ironsheep/logo-colors/internal/raster"
	"github.com/ironsheep/logo-colors/internal/svg"
)

// ErrUnsupportedFormat is returned for file extensions outside the supported
// set. Callers processing batches report it per file and keep going.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// sampleSeed pins the quantizer's RNG so detecting the same file twice gives
// the same palette.
const sampleSeed = 1

// rasterExts are the extensions quantized directly, without conversion.
var rasterExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
	".gif":  true,
}

// Result is the palette detected in one file. Colors is sorted and
// duplicate-free; Count always equals len(Colors).
type Result struct {
	Count  int      `json:"count"`
	Colors []string `json:"colors"`
}

// SupportedExtensions lists every extension Detect accepts, sorted.
func SupportedExtensions() []string {
	exts := []string{".svg", ".ai", ".eps"}
	for ext := range rasterExts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Supported reports whether the file's extension is recognized.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".svg" || ext == ".ai" || ext == ".eps" || rasterExts[ext]
}

// Detect extracts the set of distinct meaningful colors from a logo file.
//
// Errors: ErrUnsupportedFormat for unrecognized extensions,
// *convert.ConversionError when an AI/EPS file defeats every conversion
// strategy, and wrapped decode/parse failures otherwise. A decodable image
// with a degenerate pixel layout yields Count 0 with no error.
func Detect(path string) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch {
	case ext == ".svg":
		return detectSVG(path)

	case ext == ".ai" || ext == ".eps":
		tmp, err := convert.ToRaster(path)
		if err != nil {
			return nil, err
		}
		// The conversion artifact is ours; remove it on every exit path.
		defer os.Remove(tmp)

		set, err := raster.CountColors(tmp, raster.Options{Seed: sampleSeed})
		if err != nil {
			return nil, err
		}
		return newResult(set), nil

	case rasterExts[ext]:
		set, err := raster.CountColors(path, raster.Options{Seed: sampleSeed})
		if err != nil {
			return nil, err
		}
		return newResult(set), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func detectSVG(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open svg: %w", err)
	}
	defer f.Close()

	set, err := svg.Extract(f)
	if err != nil {
		return nil, err
	}
	return newResult(set), nil
}

func newResult(set map[string]struct{}) *Result {
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return &Result{Count: len(out), Colors: out}
}

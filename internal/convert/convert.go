package convert

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/ironsheep/logo-colors/internal/raster"
)

// maxConvertDimension caps the longer side of a converted raster. Vector
// sources have no intrinsic resolution; 2000px keeps enough detail for
// clustering and previews without ballooning temp files.
const maxConvertDimension = 2000

// ConversionError reports that every conversion strategy failed for a file.
type ConversionError struct {
	// Path is the input file that could not be converted.
	Path string

	// Detail is the failure from the first strategy attempted, which is
	// usually the most informative one.
	Detail error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("could not convert %s to a raster image: %v "+
		"(EPS files need a PostScript-compatible export; AI files must be "+
		"saved with PDF compatibility enabled in Illustrator)", e.Path, e.Detail)
}

func (e *ConversionError) Unwrap() error { return e.Detail }

// Strategy is one attempt in the conversion chain. Applies, when non-nil, is
// a cheap precondition (header sniff) deciding whether Run is worth trying.
type Strategy struct {
	Name    string
	Applies func(src string) bool
	Run     func(src, dst string) error
}

// strategies in attempt order. rasterizePDF lives behind a build tag; on
// non-cgo builds it reports itself unavailable and the chain falls through.
var strategies = []Strategy{
	{Name: "direct-decode", Run: directDecode},
	{Name: "svg-rasterize", Applies: hasVectorSignature, Run: rasterizeSVG},
	{Name: "pdf-rasterize", Run: rasterizePDF},
}

// ToRaster converts a vector file (AI/EPS) to a temporary PNG and returns
// its path. Ownership of the file transfers to the caller, which must
// os.Remove it after use. On error no file is left behind.
func ToRaster(path string) (string, error) {
	dst := filepath.Join(os.TempDir(), "logo-convert-"+uuid.NewString()+".png")
	if err := ToRasterFile(path, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// ToRasterFile runs the conversion chain writing the result to dst. On
// failure dst is removed and a *ConversionError is returned.
func ToRasterFile(src, dst string) error {
	var firstErr error
	for _, s := range strategies {
		if s.Applies != nil && !s.Applies(src) {
			continue
		}
		err := s.Run(src, dst)
		if err == nil {
			return nil
		}
		if firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", s.Name, err)
		}
		// A failed attempt may have written a partial file.
		os.Remove(dst)
	}

	if firstErr == nil {
		firstErr = fmt.Errorf("no conversion strategy applicable")
	}
	return &ConversionError{Path: src, Detail: firstErr}
}

// directDecode handles vector files that are secretly rasters (or carry an
// embedded preview the decoders accept): decode, flatten transparency onto
// white, downscale to the conversion cap, save as PNG, and re-open the saved
// file to validate it structurally.
func directDecode(src, dst string) error {
	img, err := raster.Decode(src)
	if err != nil {
		return err
	}

	flat := raster.FlattenOnWhite(img)
	fitted := imaging.Fit(flat, maxConvertDimension, maxConvertDimension, imaging.Lanczos)

	if err := imaging.Save(fitted, dst); err != nil {
		return fmt.Errorf("failed to save converted image: %w", err)
	}
	return validateRaster(dst)
}

// hasVectorSignature sniffs the first bytes of the file for a PostScript or
// SVG/XML signature.
func hasVectorSignature(src string) bool {
	f, err := os.Open(src)
	if err != nil {
		return false
	}
	defer f.Close()

	header := make([]byte, 100)
	n, _ := f.Read(header)
	header = header[:n]

	return bytes.Contains(header, []byte("%!PS")) ||
		bytes.Contains(header, []byte("<svg")) ||
		bytes.Contains(header, []byte("<?xml"))
}

// rasterizeSVG renders the file as an SVG at a fixed 2000x2000 canvas onto a
// white background. True PostScript files carry the %!PS signature but fail
// the SVG parse, which is fine: the chain moves on.
func rasterizeSVG(src, dst string) error {
	icon, err := oksvg.ReadIcon(src, oksvg.WarnErrorMode)
	if err != nil {
		return fmt.Errorf("failed to parse as svg: %w", err)
	}

	const side = maxConvertDimension
	icon.SetTarget(0, 0, side, side)

	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(side, side, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(side, side, scanner), 1.0)

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode rasterized svg: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return validateRaster(dst)
}

// validateRaster checks that the written artifact is non-empty and decodes
// back into a usable image.
func validateRaster(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("converted file missing: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("converted file is empty")
	}

	img, err := raster.Decode(path)
	if err != nil {
		return fmt.Errorf("converted file failed validation: %w", err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return fmt.Errorf("converted file has no pixels")
	}
	return nil
}

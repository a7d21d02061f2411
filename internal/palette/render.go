package palette

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"github.com/ironsheep/logo-colors/internal/colors"
)

// SwatchSize is the default edge length of one color square in pixels.
const SwatchSize = 64

// Render draws the colors as a horizontal strip of squares, in the order
// given. The symbolic white token renders as #FFFFFF behind a light gray
// border so it stays visible on white backgrounds. Color strings that are
// neither hex nor the white token (named-color pass-throughs) are skipped.
//
// Returns an error when no renderable color remains.
func Render(palette []string, swatchSize int) (image.Image, error) {
	if swatchSize <= 0 {
		swatchSize = SwatchSize
	}

	type rgb struct{ r, g, b float64 }
	var swatches []rgb
	for _, c := range palette {
		r, g, b, ok := parseColor(c)
		if ok {
			swatches = append(swatches, rgb{r, g, b})
		}
	}
	if len(swatches) == 0 {
		return nil, fmt.Errorf("no renderable colors in palette")
	}

	dc := gg.NewContext(swatchSize*len(swatches), swatchSize)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for i, s := range swatches {
		x := float64(i * swatchSize)
		dc.SetRGB(s.r, s.g, s.b)
		dc.DrawRectangle(x, 0, float64(swatchSize), float64(swatchSize))
		dc.Fill()

		// Border keeps light swatches visible.
		dc.SetRGB(0.8, 0.8, 0.8)
		dc.SetLineWidth(1)
		dc.DrawRectangle(x+0.5, 0.5, float64(swatchSize)-1, float64(swatchSize)-1)
		dc.Stroke()
	}

	return dc.Image(), nil
}

// parseColor resolves a canonical color string to RGB in [0,1].
func parseColor(c string) (r, g, b float64, ok bool) {
	if c == colors.White {
		return 1, 1, 1, true
	}
	if !strings.HasPrefix(c, "#") || len(c) != 7 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(c[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return float64(v>>16&0xFF) / 255,
		float64(v>>8&0xFF) / 255,
		float64(v&0xFF) / 255,
		true
}

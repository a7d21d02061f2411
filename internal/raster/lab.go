package raster

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// labPoint is one pixel (or cluster centroid) in CIELAB, scaled to the 8-bit
// convention: L in [0,255] (lightness), a and b offset by 128 into [0,255].
type labPoint [3]float64

// rgbToLab converts 8-bit-range RGB values to a scaled Lab point.
func rgbToLab(r, g, b float64) labPoint {
	c := colorful.Color{R: r / 255, G: g / 255, B: b / 255}
	l, a, bb := c.Lab()
	return labPoint{
		l * 255,
		a*100 + 128,
		bb*100 + 128,
	}
}

// labToRGB converts a scaled Lab point back to 8-bit RGB, clamped to gamut.
func labToRGB(p labPoint) (r, g, b int) {
	c := colorful.Lab(p[0]/255, (p[1]-128)/100, (p[2]-128)/100).Clamped()
	return int(math.Round(c.R * 255)),
		int(math.Round(c.G * 255)),
		int(math.Round(c.B * 255))
}

// toLab converts every pixel to the scaled Lab space.
func toLab(p *pixels) []labPoint {
	out := make([]labPoint, p.w*p.h)
	for i := range out {
		j := i * 3
		out[i] = rgbToLab(p.pix[j], p.pix[j+1], p.pix[j+2])
	}
	return out
}

// dist2 is the squared Euclidean (CIE76-style) distance between two points.
func dist2(a, b labPoint) float64 {
	d0 := a[0] - b[0]
	d1 := a[1] - b[1]
	d2 := a[2] - b[2]
	return d0*d0 + d1*d1 + d2*d2
}

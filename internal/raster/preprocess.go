package raster

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// pixels is a planar-free float view of an opaque RGB image: three float64
// values per pixel in row-major order, each in [0,255].
type pixels struct {
	w, h int
	pix  []float64
}

func fromNRGBA(img *image.NRGBA) *pixels {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	p := &pixels{w: w, h: h, pix: make([]float64, w*h*3)}

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				src := img.PixOffset(x, y)
				dst := (y*w + x) * 3
				p.pix[dst+0] = float64(img.Pix[src+0])
				p.pix[dst+1] = float64(img.Pix[src+1])
				p.pix[dst+2] = float64(img.Pix[src+2])
			}
		}
	})
	return p
}

// bilateral applies an edge-preserving smoothing filter: each output pixel is
// a weighted mean of its (2*radius+1)^2 neighborhood where the weight decays
// with both spatial distance and color difference. Strong color boundaries
// therefore survive while sensor noise and texture inside a region average
// out, which keeps clustering from inventing spurious palette entries.
func bilateral(src *pixels, radius int, sigmaColor, sigmaSpace float64) *pixels {
	w, h := src.w, src.h
	out := &pixels{w: w, h: h, pix: make([]float64, len(src.pix))}

	// Spatial weights depend only on the offset; precompute the kernel.
	size := 2*radius + 1
	spatial := make([]float64, size*size)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			spatial[(dy+radius)*size+(dx+radius)] = math.Exp(-d2 / (2 * sigmaSpace * sigmaSpace))
		}
	}
	colorDenom := 2 * sigmaColor * sigmaColor

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				ci := (y*w + x) * 3
				cr, cg, cb := src.pix[ci], src.pix[ci+1], src.pix[ci+2]

				var sumR, sumG, sumB, sumW float64
				for dy := -radius; dy <= radius; dy++ {
					ny := y + dy
					if ny < 0 || ny >= h {
						continue
					}
					for dx := -radius; dx <= radius; dx++ {
						nx := x + dx
						if nx < 0 || nx >= w {
							continue
						}
						ni := (ny*w + nx) * 3
						nr, ng, nb := src.pix[ni], src.pix[ni+1], src.pix[ni+2]

						dr, dg, db := nr-cr, ng-cg, nb-cb
						colorDist2 := dr*dr + dg*dg + db*db
						wgt := spatial[(dy+radius)*size+(dx+radius)] *
							math.Exp(-colorDist2/colorDenom)

						sumR += nr * wgt
						sumG += ng * wgt
						sumB += nb * wgt
						sumW += wgt
					}
				}

				out.pix[ci+0] = sumR / sumW
				out.pix[ci+1] = sumG / sumW
				out.pix[ci+2] = sumB / sumW
			}
		}
	})

	return out
}

// grayWorld rescales each channel so its mean matches the grand mean of all
// three, correcting a dominant lighting tint so equivalent colors land in the
// same cluster regardless of capture conditions. Values are clipped to
// [0,255] in place.
func grayWorld(p *pixels) {
	n := len(p.pix) / 3
	if n == 0 {
		return
	}

	var sum [3]float64
	for i, v := range p.pix {
		sum[i%3] += v
	}

	var mean [3]float64
	grand := 0.0
	for c := 0; c < 3; c++ {
		mean[c] = sum[c]/float64(n) + 1e-6
		grand += mean[c]
	}
	grand /= 3

	var scale [3]float64
	for c := 0; c < 3; c++ {
		scale[c] = grand / mean[c]
	}

	for i := range p.pix {
		v := p.pix[i] * scale[i%3]
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		p.pix[i] = v
	}
}

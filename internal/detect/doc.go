// Package detect routes a logo file to the right color-extraction pipeline
// by extension and shapes the answer as a Result.
//
// Dispatch (case-insensitive):
//
//	.svg            -> XML walk (internal/svg)
//	.ai, .eps       -> rasterize (internal/convert), then quantize; the
//	                   temporary raster is removed on every exit path
//	other supported -> quantize directly (internal/raster)
//	anything else   -> ErrUnsupportedFormat
//
// Detection is stateless and holds nothing across calls; independent files
// can be detected concurrently. There is no retry logic at this layer: a
// caller that wants retries or deadlines wraps Detect itself.
package detect

// Package raster reduces a raster image to the small set of colors a person
// would say it contains.
//
// The pipeline: decode (first frame only for animated formats), flatten any
// transparency onto white, downscale to at most 800px on the longer side,
// smooth with an edge-preserving bilateral filter, correct lighting tint via
// gray-world color constancy, convert to the CIELAB perceptual space, cluster
// with k-means using an entropy-adaptive cluster count, merge near-duplicate
// centroids, and render the survivors as canonical color strings.
//
// Lab values use the 8-bit scaling convention (L, a, b all in [0,255]) so
// histogram bins and distance thresholds stay in familiar units.
//
// # Determinism
//
// Subsampling and cluster seeding draw from a single seeded RNG. With a fixed
// Options.Seed the result is fully reproducible; with Seed zero a time-derived
// seed is used and repeated runs may differ by a cluster.
//
// # Supported formats
//
// PNG, JPEG, GIF, WebP, BMP and TIFF decoders are registered by this package.
package raster

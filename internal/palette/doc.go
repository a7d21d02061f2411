// Package palette renders a detected color set as a swatch-strip image, the
// server-side counterpart of the color boxes the upload page draws. Useful
// for embedding a visual palette summary next to detection results.
package palette

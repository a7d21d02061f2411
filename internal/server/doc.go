// Package server exposes the detection engine over HTTP.
//
// Two routes: GET / serves the embedded upload page, and POST /upload
// accepts up to 100 files in the multipart field "files", running detection
// on each. Results are per file: a failing file contributes an error entry
// and never aborts the rest of the batch.
//
// Each successful entry carries the color count, the palette, a base64
// data-URI preview (AI/EPS files are rasterized for preview; everything else
// embeds the original bytes), and a rendered palette swatch strip.
//
// Uploaded files are written under a unique name in the upload directory and
// removed when their detection finishes, whatever the outcome.
package server

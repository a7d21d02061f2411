// Package convert rasterizes vector formats (AI, EPS) that cannot be walked
// as an XML document, producing a temporary PNG the quantizer can consume.
//
// Conversion is an ordered chain of strategies, each tried only after the
// previous one fails:
//
//  1. Direct decode with the registered image decoders (some EPS exports are
//     really rasters), flattened onto white and capped at 2000px.
//  2. SVG rasterization for files whose header carries a PostScript or
//     SVG/XML signature, rendered at a fixed 2000x2000 onto white.
//  3. PDF first-page rendering at 300 DPI (most modern AI files are
//     PDF-based). Requires a cgo build; pure-Go builds skip to failure.
//
// The returned file is owned by the caller, which must remove it when done.
// On total failure no temporary file is left behind and the error is a
// *ConversionError carrying the first strategy's failure detail plus
// guidance for the common causes.
package convert

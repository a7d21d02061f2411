// Package colors canonicalizes CSS-style color expressions into the single
// string form used throughout the detection engine.
//
// A canonical color is either an upper-case 6-digit hex code ("#RRGGBB") or
// the symbolic token "white". All the white spellings that show up in real
// logo files (#fff, #ffffff, white, rgb(255,255,255), rgb(100%,100%,100%),
// and their rgba equivalents with full opacity) collapse to the symbolic
// token so that a near-white raster cluster and an explicit white SVG fill
// compare equal.
//
// # Known Limitation
//
// CSS named colors other than "white" are NOT resolved to hex; they pass
// through lower-cased as-is. Two distinct names for the same color (for
// example "red" and "#FF0000") therefore do not merge. This is intentional:
// resolving the full named-color table was deemed out of scope, and callers
// display whatever token was extracted.
package colors

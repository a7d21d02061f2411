// Package svg extracts the set of paint colors used by an SVG document.
//
// The document is parsed as a plain XML tree; scripts are never executed and
// external resources (stylesheets, referenced images, paint servers) are
// never fetched. Extraction walks every element, skips elements hidden by
// their own inline style or presentation attributes, and collects fill and
// stroke colors plus gradient stop colors, all normalized through the colors
// package.
//
// # Visibility
//
// Visibility is evaluated per element, not cascaded: a child of a
// display:none group is still visited and judged on its own attributes.
// This matches how designers hide individual layers in exported logo files.
//
// # Cascade
//
// When an element carries both a presentation attribute and a conflicting
// inline-style declaration (fill="red" style="fill:blue"), both values are
// collected. No CSS cascade resolution is attempted.
package svg

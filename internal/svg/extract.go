package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ironsheep/logo-colors/internal/colors"
)

// node is a generic XML element tree. Character data is discarded; only
// element names, attributes and structure matter for color extraction.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []node     `xml:",any"`
}

// attr returns the value of the named attribute (by local name) and whether
// it is present.
func (n *node) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Extract parses an SVG document and returns the set of normalized colors
// painted by it.
//
// Two passes accumulate into one set: visible elements contribute their
// fill/stroke presentation attributes and fill/stroke inline-style
// declarations; gradient definitions contribute the stop-color of every
// descendant stop (gradients are definitions, so the visibility rules do
// not apply to them). Malformed XML is returned as an error.
func Extract(r io.Reader) (map[string]struct{}, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read svg: %w", err)
	}

	var root node
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	set := make(map[string]struct{})
	walkPaint(&root, set)
	walkGradients(&root, set)
	return set, nil
}

// walkPaint visits every element and collects fill/stroke colors from
// visible ones.
func walkPaint(n *node, set map[string]struct{}) {
	if visible(n) {
		for _, attr := range []string{"fill", "stroke"} {
			if val, ok := n.attr(attr); ok && paintable(val) {
				set[colors.Normalize(val)] = struct{}{}
			}
		}
		if style, ok := n.attr("style"); ok {
			collectStyle(style, set)
		}
	}
	for i := range n.Children {
		walkPaint(&n.Children[i], set)
	}
}

// collectStyle pulls fill/stroke declarations out of an inline style value.
func collectStyle(style string, set map[string]struct{}) {
	for _, decl := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop != "fill" && prop != "stroke" {
			continue
		}
		val = strings.TrimSpace(val)
		if !paintable(val) {
			continue
		}
		set[colors.Normalize(val)] = struct{}{}
	}
}

// walkGradients visits every linearGradient/radialGradient element and
// collects stop-color from each descendant stop, whether given as an
// attribute or as the stop-color declaration of the stop's inline style.
// Other stop properties (stop-opacity, offset) are ignored.
func walkGradients(n *node, set map[string]struct{}) {
	if n.XMLName.Local == "linearGradient" || n.XMLName.Local == "radialGradient" {
		collectStops(n, set)
	}
	for i := range n.Children {
		walkGradients(&n.Children[i], set)
	}
}

func collectStops(n *node, set map[string]struct{}) {
	for i := range n.Children {
		child := &n.Children[i]
		if child.XMLName.Local == "stop" {
			if val, ok := child.attr("stop-color"); ok && val != "" {
				set[colors.Normalize(val)] = struct{}{}
			}
			if style, ok := child.attr("style"); ok {
				for _, decl := range strings.Split(style, ";") {
					prop, val, found := strings.Cut(decl, ":")
					if found && strings.TrimSpace(prop) == "stop-color" {
						set[colors.Normalize(strings.TrimSpace(val))] = struct{}{}
					}
				}
			}
		}
		collectStops(child, set)
	}
}

// visible reports whether an element is drawn, judged on its own inline
// style and presentation attributes only.
func visible(n *node) bool {
	if style, ok := n.attr("style"); ok {
		if strings.Contains(style, "display:none") ||
			strings.Contains(style, "visibility:hidden") ||
			strings.Contains(style, "opacity:0") {
			return false
		}
	}
	if v, ok := n.attr("display"); ok && v == "none" {
		return false
	}
	if v, ok := n.attr("visibility"); ok && v == "hidden" {
		return false
	}
	if v, ok := n.attr("opacity"); ok && v == "0" {
		return false
	}
	return true
}

// paintable reports whether a fill/stroke value names an actual color, as
// opposed to being empty, a no-paint keyword, or a paint-server reference.
func paintable(val string) bool {
	if val == "" {
		return false
	}
	lowered := strings.ToLower(strings.TrimSpace(val))
	if lowered == "none" || lowered == "transparent" {
		return false
	}
	return !strings.HasPrefix(val, "url(")
}

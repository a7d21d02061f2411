package colors

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// White is the symbolic token all full-opacity white spellings normalize to.
const White = "white"

var (
	rgbRe      = regexp.MustCompile(`^rgb\s*\(([^)]+)\)`)
	whiteRgbRe = regexp.MustCompile(`^rgb\s*\(\s*255\s*,\s*255\s*,\s*255\s*\)`)
	whitePctRe = regexp.MustCompile(`^rgb\s*\(\s*100%\s*,\s*100%\s*,\s*100%\s*\)`)
	// rgba forms are white only at full opacity (alpha 1, 1.0, 1.00, ...).
	whiteRgbaRe    = regexp.MustCompile(`^rgba\s*\(\s*255\s*,\s*255\s*,\s*255\s*,\s*1(\.0*)?\s*\)`)
	whiteRgbaPctRe = regexp.MustCompile(`^rgba\s*\(\s*100%\s*,\s*100%\s*,\s*100%\s*,\s*1(\.0*)?\s*\)`)
)

// Normalize canonicalizes a raw color expression.
//
// The result is one of:
//   - the symbolic token White, for any full-opacity white spelling
//   - an upper-case "#RRGGBB" hex code, for hex and rgb() inputs
//   - the lower-cased input unchanged, for named colors and anything the
//     rules above do not recognize
//
// Shorthand hex ("#abc") is expanded by doubling each nibble before
// upper-casing. Percentage rgb() components convert via round(pct * 2.55).
// Normalize never fails; unparseable input falls through to the pass-through
// branch.
func Normalize(raw string) string {
	c := strings.ToLower(strings.TrimSpace(raw))

	if isWhite(c) {
		return White
	}

	if strings.HasPrefix(c, "#") {
		if len(c) == 4 {
			// #abc -> #aabbcc
			var b strings.Builder
			b.WriteByte('#')
			for i := 1; i < 4; i++ {
				b.WriteByte(c[i])
				b.WriteByte(c[i])
			}
			c = b.String()
		}
		return strings.ToUpper(c)
	}

	if m := rgbRe.FindStringSubmatch(c); m != nil {
		if hex, ok := rgbToHex(m[1]); ok {
			return hex
		}
	}

	// Named colors (other than white) and unrecognized syntax pass through.
	return c
}

// isWhite reports whether the already-lowered expression is one of the
// recognized full-opacity white spellings.
func isWhite(c string) bool {
	switch c {
	case "#fff", "#ffffff", White:
		return true
	}
	return whiteRgbRe.MatchString(c) ||
		whitePctRe.MatchString(c) ||
		whiteRgbaRe.MatchString(c) ||
		whiteRgbaPctRe.MatchString(c)
}

// rgbToHex converts the component list of an rgb() expression to "#RRGGBB".
// Percentage components scale by 2.55 and round; integer components truncate.
// Returns ok=false when fewer than three components parse.
func rgbToHex(components string) (string, bool) {
	parts := strings.Split(components, ",")
	if len(parts) < 3 {
		return "", false
	}

	pct := strings.Contains(parts[0], "%")
	vals := make([]int, 3)
	for i := 0; i < 3; i++ {
		p := strings.TrimSpace(parts[i])
		if pct {
			p = strings.ReplaceAll(p, "%", "")
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return "", false
		}
		v := int(f)
		if pct {
			v = int(math.Round(f * 2.55))
		}
		vals[i] = clampChannel(v)
	}

	return fmt.Sprintf("#%02X%02X%02X", vals[0], vals[1], vals[2]), true
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

package colors

import "testing"

func TestNormalize_WhiteSpellings(t *testing.T) {
	tests := []string{
		"#fff",
		"#FFF",
		"#ffffff",
		"#FFFFFF",
		"white",
		"White",
		"  white  ",
		"rgb(255,255,255)",
		"rgb( 255 , 255 , 255 )",
		"rgb(100%,100%,100%)",
		"rgba(255,255,255,1)",
		"rgba(255,255,255,1.0)",
		"rgba(255, 255, 255, 1.00)",
		"rgba(100%,100%,100%,1.0)",
	}

	for _, raw := range tests {
		if got := Normalize(raw); got != White {
			t.Errorf("Normalize(%q) = %q, want %q", raw, got, White)
		}
	}
}

func TestNormalize_HexShorthand(t *testing.T) {
	if got, want := Normalize("#ABC"), Normalize("#aabbcc"); got != want {
		t.Errorf("shorthand: Normalize(#ABC) = %q, Normalize(#aabbcc) = %q", got, want)
	}
	if got := Normalize("#abc"); got != "#AABBCC" {
		t.Errorf("Normalize(#abc) = %q, want #AABBCC", got)
	}
	if got := Normalize("#1a2b3c"); got != "#1A2B3C" {
		t.Errorf("Normalize(#1a2b3c) = %q, want #1A2B3C", got)
	}
}

func TestNormalize_RGBForms(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"rgb(255,0,0)", "#FF0000"},
		{"rgb(0, 128, 255)", "#0080FF"},
		{"rgb( 12 , 34 , 56 )", "#0C2238"},
		// round(50*2.55) = 128
		{"rgb(50%,0%,100%)", "#8000FF"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.raw); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalize_PassThrough(t *testing.T) {
	// Named colors other than white are not resolved to hex; they pass
	// through lower-cased. Same for anything unparseable.
	tests := []struct {
		raw  string
		want string
	}{
		{"red", "red"},
		{"Rebeccapurple", "rebeccapurple"},
		{"rgba(255,0,0,0.5)", "rgba(255,0,0,0.5)"},
		{"rgb(nope)", "rgb(nope)"},
		{"rgb(1,2)", "rgb(1,2)"},
		{"", ""},
		{"currentColor", "currentcolor"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.raw); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalize_ChannelClamping(t *testing.T) {
	if got := Normalize("rgb(300,-5,128)"); got != "#FF0080" {
		t.Errorf("Normalize(rgb(300,-5,128)) = %q, want #FF0080", got)
	}
}

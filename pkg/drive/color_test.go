package drive

import "testing"

func TestColor_RoundTrip(t *testing.T) {
	colors := []Color{ColorNone, ColorRed, ColorGreen, ColorBlue, ColorYellow, ColorWhite, ColorBlack}
	for _, c := range colors {
		parsed, err := ParseColor(c.String())
		if err != nil {
			t.Errorf("ParseColor(%q): %v", c.String(), err)
			continue
		}
		if parsed != c {
			t.Errorf("round trip: got %v, want %v", parsed, c)
		}
	}
}

func TestParseColor_Unknown(t *testing.T) {
	if _, err := ParseColor("mauve"); err == nil {
		t.Error("ParseColor: got nil, want error for unknown color")
	}
}

func TestParseColor_EmptyMeansNone(t *testing.T) {
	c, err := ParseColor("")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	if c != ColorNone {
		t.Errorf("ParseColor(\"\"): got %v, want none", c)
	}
}

package drive

import (
	"encoding/json"
	"fmt"
)

// Color is a discrete color as reported by the downward color sensor and
// accepted by the hub status light.
type Color int

const (
	// ColorNone means no confident color reading.
	ColorNone Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorWhite
	ColorBlack
)

// String returns the wire name of the color.
func (c Color) String() string {
	switch c {
	case ColorNone:
		return "none"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorYellow:
		return "yellow"
	case ColorWhite:
		return "white"
	case ColorBlack:
		return "black"
	default:
		return "unknown"
	}
}

// ParseColor converts a wire name to a Color.
func ParseColor(s string) (Color, error) {
	switch s {
	case "none", "":
		return ColorNone, nil
	case "red":
		return ColorRed, nil
	case "green":
		return ColorGreen, nil
	case "blue":
		return ColorBlue, nil
	case "yellow":
		return ColorYellow, nil
	case "white":
		return ColorWhite, nil
	case "black":
		return ColorBlack, nil
	default:
		return ColorNone, fmt.Errorf("drive: unknown color %q", s)
	}
}

// MarshalJSON encodes the color as its wire name.
func (c Color) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON decodes a color from its wire name.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML encodes the color as its wire name in tuning files.
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

// UnmarshalYAML decodes a color from its wire name in tuning files.
func (c *Color) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

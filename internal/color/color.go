// Package color converts bookmark colors between CSS rgb() notation and hex,
// and classifies them as dark or light for text contrast.
package color

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DarkThreshold is the channel sum below which a color counts as dark.
const DarkThreshold = 512

// ErrInvalidColor is returned for strings that are neither hex nor rgb().
var ErrInvalidColor = errors.New("invalid color")

var rgbRegex = regexp.MustCompile(`(?i)^rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*[\d.]+%?\s*)?\)$`)

// RGB is a color with one byte per channel.
type RGB struct {
	R, G, B uint8
}

// Sum returns the sum of the three channels (0-765).
func (c RGB) Sum() int {
	return int(c.R) + int(c.G) + int(c.B)
}

// ToHex formats c as a lower-case "#rrggbb" string.
func ToHex(c RGB) string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

// ParseHex parses "#rrggbb" or "#rgb", case-insensitive.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") || (len(s) != 7 && len(s) != 4) {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// ParseRGB parses CSS notation such as "rgb(18, 52, 86)".
// Any alpha component of rgba() is ignored.
func ParseRGB(s string) (RGB, error) {
	m := rgbRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	var channels [3]uint8
	for i, part := range m[1:4] {
		v, err := strconv.Atoi(part)
		if err != nil || v > 255 {
			return RGB{}, fmt.Errorf("%w: channel %q out of range", ErrInvalidColor, part)
		}
		channels[i] = uint8(v)
	}
	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// Parse accepts either hex or rgb() notation.
func Parse(s string) (RGB, error) {
	if strings.HasPrefix(strings.TrimSpace(s), "#") {
		return ParseHex(s)
	}
	return ParseRGB(s)
}

// Normalize returns s as a lower-case "#rrggbb" string.
func Normalize(s string) (string, error) {
	c, err := Parse(s)
	if err != nil {
		return "", err
	}
	return ToHex(c), nil
}

// IsDark reports whether the channel sum of hex is below DarkThreshold.
// Unparseable input is treated as light.
func IsDark(hex string) bool {
	c, err := ParseHex(hex)
	if err != nil {
		return false
	}
	return c.Sum() < DarkThreshold
}

// Package colour provides the colour engine: OKLCH conversion, scale
// generation, WCAG contrast evaluation and gradient contrast sampling.
//
// Every function in this package is pure. Invalid input never produces an
// error or a panic; it degrades to a documented default instead.
package colour

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

const (
	// BlackHex is returned whenever a colour cannot be represented.
	BlackHex = "#000000"

	// WhiteHex is the light fallback used by the gradient sampler.
	WhiteHex = "#FFFFFF"
)

// RGB represents a color in 8-bit sRGB.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// HexUpper returns the RGB color as an uppercase hex string (e.g., "#1A2B3C").
func (rgb RGB) HexUpper() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// Color converts the value to an opaque color.RGBA.
func (rgb RGB) Color() color.Color {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// ParseHex parses a strict six digit hex colour. A single leading '#' is
// optional. Shorthand and alpha forms are rejected.
func ParseHex(hex string) (RGB, bool) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return RGB{}, false
	}

	var ch [3]uint8
	for i := range ch {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, false
		}
		ch[i] = uint8(v)
	}

	return RGB{R: ch[0], G: ch[1], B: ch[2]}, true
}

// IsHex reports whether s is '#' followed by exactly six hex digits.
func IsHex(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	_, ok := ParseHex(s)
	return ok
}

package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxChroma is the upper bound for OKLCH chroma.
const MaxChroma = 0.4

// OKLCH is a colour in the OKLCH cylindrical space. L is in [0,1], C in
// [0,MaxChroma] and H in [0,360).
type OKLCH struct {
	L float64 `json:"l"`
	C float64 `json:"c"`
	H float64 `json:"h"`
}

// NewOKLCH builds an OKLCH value with lightness and chroma clamped and hue
// wrapped into range.
func NewOKLCH(l, c, h float64) OKLCH {
	return OKLCH{
		L: clamp(l, 0, 1),
		C: clamp(c, 0, MaxChroma),
		H: WrapHue(h),
	}
}

// ParseToOKLCH parses any supported colour string and converts it to OKLCH.
// oklch() and oklab() values are taken as written, only clamped into range.
// It returns false when the input is not a colour or the conversion produces
// non-finite components.
func ParseToOKLCH(input string) (OKLCH, bool) {
	s := normalise(input)
	if raw, ok, perceptual := parsePerceptual(s); perceptual {
		if !ok || !finite(raw.L) || !finite(raw.C) || !finite(raw.H) {
			return OKLCH{}, false
		}
		return NewOKLCH(raw.L, raw.C, raw.H), true
	}

	col, ok := parseColor(s)
	if !ok {
		return OKLCH{}, false
	}

	l, c, h := colorToOKLCH(col)
	if !finite(l) || !finite(c) || !finite(h) {
		return OKLCH{}, false
	}
	return NewOKLCH(l, c, h), true
}

// FormatHex converts an OKLCH colour to a lowercase six digit sRGB hex
// string. Out of gamut colours are clipped to sRGB. Colours that cannot be
// represented at all format as BlackHex.
func FormatHex(c OKLCH) string {
	if !finite(c.L) || !finite(c.C) || !finite(c.H) {
		return BlackHex
	}

	col := oklchToColor(c.L, c.C, c.H)
	if !finite(col.R) || !finite(col.G) || !finite(col.B) {
		return BlackHex
	}

	return col.Clamped().Hex()
}

// ToHex parses any supported colour string and returns its sRGB hex form
// without passing through OKLCH clamping.
func ToHex(input string) (string, bool) {
	col, ok := ParseColor(input)
	if !ok || !finite(col.R) || !finite(col.G) || !finite(col.B) {
		return "", false
	}
	return col.Clamped().Hex(), true
}

// WrapHue normalises a hue in degrees into [0,360). Non-finite values wrap to 0.
func WrapHue(h float64) float64 {
	if !finite(h) {
		return 0
	}
	m := math.Mod(h, 360)
	if m < 0 {
		m += 360
	}
	// m+360 can round up to exactly 360 for tiny negative inputs.
	if m >= 360 {
		m = 0
	}
	return m
}

// colorToOKLCH converts sRGB to OKLCH with the OKLab matrices from
// https://bottosson.github.io/posts/oklab/. 8-bit sRGB values survive a
// round trip through oklchToColor unchanged.
func colorToOKLCH(col colorful.Color) (l, c, h float64) {
	r, g, b := col.LinearRgb()

	lm := math.Cbrt(0.4122214708*r + 0.5363325363*g + 0.0514459929*b)
	mm := math.Cbrt(0.2119034982*r + 0.6806995451*g + 0.1073969566*b)
	sm := math.Cbrt(0.0883024619*r + 0.2817188376*g + 0.6299787005*b)

	l = 0.2104542553*lm + 0.7936177850*mm - 0.0040720468*sm
	a := 1.9779984951*lm - 2.4285922050*mm + 0.4505937099*sm
	bb := 0.0259040371*lm + 0.7827717662*mm - 0.8086757660*sm

	c = math.Hypot(a, bb)
	h = WrapHue(math.Atan2(bb, a) * 180 / math.Pi)
	return l, c, h
}

// oklchToColor is the inverse of colorToOKLCH. The result is not clamped to
// the sRGB gamut.
func oklchToColor(l, c, h float64) colorful.Color {
	rad := h * math.Pi / 180
	a, b := c*math.Cos(rad), c*math.Sin(rad)

	lm := l + 0.3963377774*a + 0.2158037573*b
	mm := l - 0.1055613458*a - 0.0638541728*b
	sm := l - 0.0894841775*a - 1.2914855480*b
	lm, mm, sm = lm*lm*lm, mm*mm*mm, sm*sm*sm

	return colorful.LinearRgb(
		+4.0767416621*lm-3.3077115913*mm+0.2309699292*sm,
		-1.2684380046*lm+2.6097574011*mm-0.3413193965*sm,
		-0.0041960863*lm-0.7034186147*mm+1.7076147010*sm,
	)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

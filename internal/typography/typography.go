// Package typography builds modular type scales for the token set.
package typography

import (
	"math"
	"strconv"
)

// RootFontSize is the pixel size one rem is assumed to equal.
const RootFontSize = 16

// Defaults applied to a fresh token set.
const (
	DefaultFont     = "Inter"
	DefaultBaseSize = 16
	DefaultRatio    = 1.25
)

// TypeScaleStep is one size in a type scale.
type TypeScaleStep struct {
	ID    string  `json:"id"`
	PX    float64 `json:"px"`
	Rem   string  `json:"rem"`
	Label string  `json:"label"`
}

// Typography is the font family together with the scale derived from its
// base size and ratio.
type Typography struct {
	Font     string          `json:"font"`
	BaseSize float64         `json:"baseSize"`
	Ratio    float64         `json:"ratio"`
	Scale    []TypeScaleStep `json:"scale"`
}

// FontPreview is a font offered for selection.
type FontPreview struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var steps = []struct {
	key    string
	weight int
}{
	{"xs", -2},
	{"sm", -1},
	{"base", 0},
	{"lg", 1},
	{"xl", 2},
	{"2xl", 3},
	{"3xl", 4},
	{"4xl", 5},
	{"5xl", 6},
	{"6xl", 7},
}

var fontPreviews = []FontPreview{
	{Value: "Inter", Label: "Inter"},
	{Value: "Manrope", Label: "Manrope"},
	{Value: "Roboto", Label: "Roboto"},
	{Value: "Space Grotesk", Label: "Space Grotesk"},
	{Value: "Lora", Label: "Lora"},
	{Value: "Open Sans", Label: "Open Sans"},
}

// Default returns the typography used by a new project.
func Default() Typography {
	return New(DefaultFont, DefaultBaseSize, DefaultRatio)
}

// New returns typography for font with its scale computed.
func New(font string, baseSize, ratio float64) Typography {
	return Typography{
		Font:     font,
		BaseSize: baseSize,
		Ratio:    ratio,
		Scale:    CreateTypeScale(baseSize, ratio),
	}
}

// CreateTypeScale computes ten sizes from xs to 6xl where each step is the
// previous one multiplied by ratio and base sits at weight zero.
func CreateTypeScale(baseSize, ratio float64) []TypeScaleStep {
	out := make([]TypeScaleStep, len(steps))
	for i, s := range steps {
		px := Round(baseSize*math.Pow(ratio, float64(s.weight)), 2)
		out[i] = TypeScaleStep{
			ID:    s.key,
			PX:    px,
			Rem:   FormatNumber(PxToRem(px)) + "rem",
			Label: s.key,
		}
	}
	return out
}

// PxToRem converts pixels to rem rounded to four decimals.
func PxToRem(px float64) float64 {
	return Round(px/RootFontSize, 4)
}

// Round rounds v to decimals places, halves away from zero.
func Round(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

// FormatNumber renders v in its shortest decimal form ("1", "0.8").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FontPreviews lists the fonts offered for selection.
func FontPreviews() []FontPreview {
	return append([]FontPreview(nil), fontPreviews...)
}

// StepKeys returns the scale keys from smallest to largest.
func StepKeys() []string {
	keys := make([]string, len(steps))
	for i, s := range steps {
		keys[i] = s.key
	}
	return keys
}

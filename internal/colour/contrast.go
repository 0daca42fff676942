package colour

import (
	"image/color"
	"math"
)

// WCAG 2.x contrast thresholds.
const (
	ThresholdAA       = 4.5
	ThresholdAALarge  = 3.0
	ThresholdAAA      = 7.0
	ThresholdAAALarge = 4.5
)

// ContrastResult is a contrast ratio together with its WCAG compliance flags.
type ContrastResult struct {
	Ratio    float64 `json:"ratio"`
	AA       bool    `json:"aa"`
	AALarge  bool    `json:"aaLarge"`
	AAA      bool    `json:"aaa"`
	AAALarge bool    `json:"aaaLarge"`
}

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c color.Color) float64 {
	return luminance(ToRGB(c))
}

func luminance(rgb RGB) float64 {
	rf := gammaCorrect(float64(rgb.R) / 255.0)
	gf := gammaCorrect(float64(rgb.G) / 255.0)
	bf := gammaCorrect(float64(rgb.B) / 255.0)

	return 0.2126*rf + 0.7152*gf + 0.0722*bf
}

// gammaCorrect converts a normalised sRGB channel to linear light.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatioColors calculates the unrounded contrast ratio between two colours.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatioColors(c1, c2 color.Color) float64 {
	return ratio(ToRGB(c1), ToRGB(c2))
}

func ratio(a, b RGB) float64 {
	l1 := luminance(a)
	l2 := luminance(b)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// ContrastRatio returns the WCAG contrast ratio between two six digit hex
// colours, rounded to two decimals. If either colour cannot be parsed it
// returns 1, the minimum possible ratio.
func ContrastRatio(foreground, background string) float64 {
	fg, ok := ParseHex(foreground)
	if !ok {
		return 1
	}
	bg, ok := ParseHex(background)
	if !ok {
		return 1
	}

	return Round(ratio(fg, bg), 2)
}

// EvaluateContrast computes the contrast ratio and its compliance flags.
func EvaluateContrast(foreground, background string) ContrastResult {
	return ClassifyContrast(ContrastRatio(foreground, background))
}

// ClassifyContrast derives the WCAG compliance flags for a ratio.
func ClassifyContrast(ratio float64) ContrastResult {
	return ContrastResult{
		Ratio:    ratio,
		AA:       ratio >= ThresholdAA,
		AALarge:  ratio >= ThresholdAALarge,
		AAA:      ratio >= ThresholdAAA,
		AAALarge: ratio >= ThresholdAAALarge,
	}
}

// Round rounds v to the given number of decimals, halves away from zero.
func Round(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

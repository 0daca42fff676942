package colour

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContrastRatio(t *testing.T) {
	tests := []struct {
		name string
		fg   string
		bg   string
		want float64
	}{
		{name: "black on white", fg: "#000000", bg: "#FFFFFF", want: 21},
		{name: "white on black", fg: "#ffffff", bg: "#000000", want: 21},
		{name: "identical", fg: "#FFFFFF", bg: "#FFFFFF", want: 1},
		{name: "grey on white", fg: "#767676", bg: "#FFFFFF", want: 4.54},
		{name: "without hash", fg: "000000", bg: "FFFFFF", want: 21},
		{name: "unparseable foreground", fg: "bad", bg: "#FFFFFF", want: 1},
		{name: "unparseable background", fg: "#000000", bg: "", want: 1},
		{name: "shorthand rejected", fg: "#FFF", bg: "#000000", want: 1},
		{name: "named rejected", fg: "black", bg: "#FFFFFF", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContrastRatio(tt.fg, tt.bg))
		})
	}
}

func TestContrastRatio_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"#6750A4", "#FFFFFF"},
		{"#10B981", "#111111"},
		{"#3B82F6", "#FF705D"},
	}

	for _, p := range pairs {
		forward := ContrastRatio(p[0], p[1])
		assert.Equal(t, forward, ContrastRatio(p[1], p[0]))
		assert.GreaterOrEqual(t, forward, 1.0)
		assert.LessOrEqual(t, forward, 21.0)
	}
}

func TestEvaluateContrast(t *testing.T) {
	got := EvaluateContrast("#767676", "#FFFFFF")
	assert.Equal(t, ContrastResult{Ratio: 4.54, AA: true, AALarge: true, AAA: false, AAALarge: true}, got)

	worst := EvaluateContrast("nope", "#FFFFFF")
	assert.Equal(t, ContrastResult{Ratio: 1}, worst)
}

func TestClassifyContrast(t *testing.T) {
	tests := []struct {
		ratio float64
		want  ContrastResult
	}{
		{ratio: 2.99, want: ContrastResult{Ratio: 2.99}},
		{ratio: 3, want: ContrastResult{Ratio: 3, AALarge: true}},
		{ratio: 4.5, want: ContrastResult{Ratio: 4.5, AA: true, AALarge: true, AAALarge: true}},
		{ratio: 7, want: ContrastResult{Ratio: 7, AA: true, AALarge: true, AAA: true, AAALarge: true}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyContrast(tt.ratio))
	}
}

func TestLuminance(t *testing.T) {
	assert.InDelta(t, 0.0, Luminance(color.Black), 1e-12)
	assert.InDelta(t, 1.0, Luminance(color.White), 1e-12)
	assert.InDelta(t, 0.2126, Luminance(color.RGBA{R: 255, A: 255}), 1e-9)
}

func TestContrastRatioColors(t *testing.T) {
	assert.InDelta(t, 21.0, ContrastRatioColors(color.Black, color.White), 1e-9)
	assert.InDelta(t, 1.0, ContrastRatioColors(color.White, color.White), 1e-9)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 4.54, Round(4.5417, 2))
	assert.Equal(t, 1.25, Round(1.245000001, 2))
	assert.Equal(t, 0.0625, Round(0.0625, 4))
}

package colour

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoStop(first, last string) GradientDef {
	return GradientDef{
		Type:  GradientLinear,
		Angle: "135deg",
		Stops: []GradientStop{
			{ColorVar: first, At: "0%"},
			{ColorVar: last, At: "100%"},
		},
	}
}

func TestEvaluateGradientContrast_FallbackEndpoints(t *testing.T) {
	g := twoStop("--missing-a", "--missing-b")

	got := EvaluateGradientContrast(g, "#000000", 12, nil)
	assert.Equal(t, 1.0, got.Min)
	assert.Equal(t, 21.0, got.Max)
	assert.Greater(t, got.Avg, got.Min)
	assert.Less(t, got.Avg, got.Max)
}

func TestEvaluateGradientContrast_TwoSamples(t *testing.T) {
	got := EvaluateGradientContrast(twoStop("--a", "--b"), "#000000", 2, nil)
	assert.Equal(t, GradientReport{Min: 1, Avg: 11, Max: 21}, got)
}

func TestEvaluateGradientContrast_SamplesRaised(t *testing.T) {
	g := twoStop("--a", "--b")
	for _, n := range []int{-3, 0, 1} {
		assert.Equal(t, EvaluateGradientContrast(g, "#000000", 2, nil), EvaluateGradientContrast(g, "#000000", n, nil))
	}
}

func TestEvaluateGradientContrast_UniformGradient(t *testing.T) {
	r := MapResolver{"--a": "#6750A4", "--b": "#6750A4"}
	want := ContrastRatio("#FFFFFF", "#6750A4")

	got := EvaluateGradientContrast(twoStop("--a", "--b"), "#FFFFFF", 12, r)
	assert.Equal(t, GradientReport{Min: want, Avg: want, Max: want}, got)
}

func TestEvaluateGradientContrast_IgnoresInteriorStops(t *testing.T) {
	r := MapResolver{"--a": "#FFFFFF", "--mid": "#000000", "--b": "#FFFFFF"}
	g := GradientDef{
		Type: GradientLinear,
		Stops: []GradientStop{
			{ColorVar: "--a"},
			{ColorVar: "--mid"},
			{ColorVar: "--b"},
		},
	}

	got := EvaluateGradientContrast(g, "#000000", 12, r)
	assert.Equal(t, GradientReport{Min: 21, Avg: 21, Max: 21}, got)
}

func TestEvaluateGradientContrast_NonHexResolution(t *testing.T) {
	r := MapResolver{"--a": "hsl(220 85% 48%)", "--b": "#FFF"}

	got := EvaluateGradientContrast(twoStop("--a", "--b"), "#000000", 2, r)
	assert.Equal(t, GradientReport{Min: 1, Avg: 11, Max: 21}, got)
}

func TestEvaluateGradientContrast_StripsVarWrapper(t *testing.T) {
	var asked []string
	r := ResolverFunc(func(name string) (string, bool) {
		asked = append(asked, name)
		return "#FFFFFF", true
	})

	got := EvaluateGradientContrast(twoStop("var(--color-brand-40)", " var( --color-brand-50 ) "), "#000000", 4, r)
	assert.Equal(t, []string{"--color-brand-40", "--color-brand-50"}, asked)
	assert.Equal(t, 21.0, got.Min)
}

func TestEvaluateGradientContrast_Ordered(t *testing.T) {
	r := MapResolver{"--a": "#10B981", "--b": "#3B82F6"}
	for _, fg := range []string{"#000000", "#FFFFFF", "#FF705D", "garbage"} {
		got := EvaluateGradientContrast(twoStop("--a", "--b"), fg, 7, r)
		assert.LessOrEqual(t, got.Min, got.Avg, fg)
		assert.LessOrEqual(t, got.Avg, got.Max, fg)
		assert.GreaterOrEqual(t, got.Min, 1.0, fg)
		assert.LessOrEqual(t, got.Max, 21.0, fg)
	}
}

func TestEvaluateGradientContrast_NoStops(t *testing.T) {
	got := EvaluateGradientContrast(GradientDef{Type: GradientConic}, "#000000", 2, MapResolver{})
	assert.Equal(t, GradientReport{Min: 1, Avg: 11, Max: 21}, got)
}

func TestMixHex(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		t    float64
		want string
	}{
		{name: "midpoint", a: "#000000", b: "#FFFFFF", t: 0.5, want: "#808080"},
		{name: "start", a: "#123456", b: "#FFFFFF", t: 0, want: "#123456"},
		{name: "end lowercased input", a: "#000000", b: "#abcdef", t: 1, want: "#ABCDEF"},
		{name: "clamped below", a: "#102030", b: "#FFFFFF", t: -1, want: "#102030"},
		{name: "clamped above", a: "#000000", b: "#FF0000", t: 2, want: "#FF0000"},
		{name: "bad input", a: "nope", b: "#FFFFFF", t: 0.5, want: BlackHex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MixHex(tt.a, tt.b, tt.t))
		})
	}
}

func TestToCSSGradient(t *testing.T) {
	tests := []struct {
		name string
		in   GradientDef
		want string
	}{
		{
			name: "linear",
			in:   twoStop("--color-brand-40", "--color-brand-50"),
			want: "linear-gradient(135deg, var(--color-brand-40) 0%, var(--color-brand-50) 100%)",
		},
		{
			name: "linear default angle",
			in:   GradientDef{Type: GradientLinear, Stops: []GradientStop{{ColorVar: "--a"}, {ColorVar: "--b"}}},
			want: "linear-gradient(180deg, var(--a), var(--b))",
		},
		{
			name: "radial default shape",
			in:   GradientDef{Type: GradientRadial, Stops: []GradientStop{{ColorVar: "var(--a)"}}},
			want: "radial-gradient(circle, var(--a))",
		},
		{
			name: "conic",
			in:   GradientDef{Type: GradientConic, Stops: []GradientStop{{ColorVar: "--a", At: "25%"}, {ColorVar: "--b"}}},
			want: "conic-gradient(var(--a) 25%, var(--b))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToCSSGradient(tt.in))
		})
	}
}

func TestVarName(t *testing.T) {
	assert.Equal(t, "--x", VarName("var(--x)"))
	assert.Equal(t, "--x", VarName("  --x "))
	assert.Equal(t, "--x", VarName("var( --x )"))
}

package colour

import (
	"fmt"
	"math"
	"strings"
)

// GradientType is the CSS gradient function a definition renders to.
type GradientType string

const (
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
	GradientConic  GradientType = "conic"
)

// DefaultGradientSamples is the sample count used when callers have no preference.
const DefaultGradientSamples = 12

// GradientStop references a colour symbolically, usually a CSS custom
// property such as "--color-brand-40".
type GradientStop struct {
	ColorVar string `json:"colorVar" yaml:"colorVar" toml:"colorVar" validate:"required"`
	At       string `json:"at,omitempty" yaml:"at,omitempty" toml:"at,omitempty"`
}

// GradientDef describes a gradient. Angle applies to linear gradients and
// Shape to radial ones.
type GradientDef struct {
	Type  GradientType   `json:"type" yaml:"type" toml:"type" validate:"required,oneof=linear radial conic"`
	Angle string         `json:"angle,omitempty" yaml:"angle,omitempty" toml:"angle,omitempty"`
	Shape string         `json:"shape,omitempty" yaml:"shape,omitempty" toml:"shape,omitempty"`
	Stops []GradientStop `json:"stops" yaml:"stops" toml:"stops" validate:"required,min=1,dive"`
}

// GradientReport summarises the contrast of a foreground over a gradient.
type GradientReport struct {
	Min float64 `json:"min"`
	Avg float64 `json:"avg"`
	Max float64 `json:"max"`
}

// Resolver turns a symbolic colour reference into a concrete colour.
type Resolver interface {
	Resolve(name string) (string, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(name string) (string, bool)

// Resolve calls f(name).
func (f ResolverFunc) Resolve(name string) (string, bool) {
	return f(name)
}

// MapResolver resolves references from a fixed map.
type MapResolver map[string]string

// Resolve looks name up in the map.
func (m MapResolver) Resolve(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// VarName strips a var(...) wrapper from a colour reference.
func VarName(ref string) string {
	s := strings.TrimSpace(ref)
	s = strings.TrimPrefix(s, "var(")
	s = strings.TrimSuffix(s, ")")
	return strings.TrimSpace(s)
}

// EvaluateGradientContrast estimates the contrast of foreground over the
// gradient g by sampling a straight sRGB mix between its first and last
// stops. Interior stops are ignored, so the result is an approximation of the
// rendered gradient rather than an exact bound.
//
// Stops resolve through r. An unresolved first stop falls back to black and an
// unresolved last stop to white, the widest possible span. samples below 2 are
// raised to 2.
func EvaluateGradientContrast(g GradientDef, foreground string, samples int, r Resolver) GradientReport {
	first, last := BlackHex, WhiteHex
	if len(g.Stops) > 0 {
		first = resolveStop(r, g.Stops[0], BlackHex)
		last = resolveStop(r, g.Stops[len(g.Stops)-1], WhiteHex)
	}

	if samples < 2 {
		samples = 2
	}

	minRatio, maxRatio := math.Inf(1), math.Inf(-1)
	var sum float64
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples-1)
		ratio := ContrastRatio(foreground, MixHex(first, last, t))

		minRatio = math.Min(minRatio, ratio)
		maxRatio = math.Max(maxRatio, ratio)
		sum += ratio
	}

	return GradientReport{
		Min: minRatio,
		Avg: Round(sum/float64(samples), 2),
		Max: maxRatio,
	}
}

func resolveStop(r Resolver, stop GradientStop, fallback string) string {
	if r == nil {
		return fallback
	}
	value, ok := r.Resolve(VarName(stop.ColorVar))
	value = strings.TrimSpace(value)
	if !ok || !IsHex(value) {
		return fallback
	}
	return value
}

// MixHex linearly interpolates two hex colours channel by channel in sRGB
// byte space and returns an uppercase hex string. t is clamped to [0,1].
// Unparseable input yields BlackHex.
func MixHex(a, b string, t float64) string {
	from, ok := ParseHex(a)
	if !ok {
		return BlackHex
	}
	to, ok := ParseHex(b)
	if !ok {
		return BlackHex
	}
	t = clamp(t, 0, 1)

	mix := func(x, y uint8) uint8 {
		v := float64(x) + (float64(y)-float64(x))*t
		return uint8(clamp(math.Floor(v+0.5), 0, 255))
	}

	return RGB{
		R: mix(from.R, to.R),
		G: mix(from.G, to.G),
		B: mix(from.B, to.B),
	}.HexUpper()
}

// ToCSSGradient renders g as a CSS gradient function over var() references.
func ToCSSGradient(g GradientDef) string {
	stops := make([]string, len(g.Stops))
	for i, s := range g.Stops {
		stops[i] = fmt.Sprintf("var(%s)", VarName(s.ColorVar))
		if s.At != "" {
			stops[i] += " " + s.At
		}
	}
	list := strings.Join(stops, ", ")

	switch g.Type {
	case GradientLinear:
		angle := g.Angle
		if angle == "" {
			angle = "180deg"
		}
		return fmt.Sprintf("linear-gradient(%s, %s)", angle, list)
	case GradientRadial:
		shape := g.Shape
		if shape == "" {
			shape = "circle"
		}
		return fmt.Sprintf("radial-gradient(%s, %s)", shape, list)
	default:
		return fmt.Sprintf("conic-gradient(%s)", list)
	}
}

package tokens

import "github.com/jmylchreest/tonal/internal/colour"

// Gradient is a named gradient definition.
type Gradient struct {
	Name string
	Def  colour.GradientDef
}

// Gradients returns the built-in gradient presets.
func Gradients() []Gradient {
	return []Gradient{
		{
			Name: "brandSoft",
			Def:  linear("135deg", "--color-brand-40", "--color-brand-50"),
		},
		{
			Name: "brandVibrant",
			Def:  linear("180deg", "--color-brand-60", "--color-brand-40"),
		},
		{
			Name: "accentSoft",
			Def:  linear("135deg", "--color-accent-40", "--color-accent-50"),
		},
	}
}

// FindGradient returns the preset with the given name.
func FindGradient(name string) (colour.GradientDef, bool) {
	for _, g := range Gradients() {
		if g.Name == name {
			return g.Def, true
		}
	}
	return colour.GradientDef{}, false
}

func linear(angle, from, to string) colour.GradientDef {
	return colour.GradientDef{
		Type:  colour.GradientLinear,
		Angle: angle,
		Stops: []colour.GradientStop{
			{ColorVar: from, At: "0%"},
			{ColorVar: to, At: "100%"},
		},
	}
}

package tokens

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/jmylchreest/tonal/internal/colour"
)

// Mode selects the light or dark semantic variables.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ParseMode parses a theme mode name. An empty string is light.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeLight:
		return ModeLight, nil
	case ModeDark:
		return ModeDark, nil
	default:
		return "", fmt.Errorf("unknown theme mode %q (want light or dark)", s)
	}
}

// Palette maps a tone number to a CSS colour value.
type Palette map[int]string

// Tones returns the palette's tones in ascending order.
func (p Palette) Tones() []int {
	return slices.Sorted(maps.Keys(p))
}

// Theme is the built-in colour token map.
type Theme struct {
	Neutral Palette
	Brand   Palette
	Accent  Palette
	Success Palette
	Warning Palette
	Danger  Palette

	FontSans string
	FontMono string
}

type semanticValue struct {
	name        string
	light, dark string
}

var semantic = []semanticValue{
	{"--color-surface", "hsl(0 0% 100%)", "hsl(220 10% 6%)"},
	{"--color-surface-elevated", "hsl(220 12% 98%)", "hsl(220 9% 10%)"},
	{"--color-surface-muted", "hsl(220 14% 96%)", "hsl(220 8% 15%)"},
	{"--color-text", "hsl(224 71% 4%)", "hsl(0 0% 100%)"},
	{"--color-text-muted", "hsl(220 12% 40%)", "hsl(220 15% 75%)"},
	{"--color-border", "hsl(220 16% 88%)", "hsl(220 6% 22%)"},
	{"--color-focus", "hsl(220 90% 56% / 0.6)", "hsl(220 90% 62% / 0.6)"},
	{"--color-brand-fg", "hsl(220 90% 56%)", "hsl(220 90% 56%)"},
	{"--color-brand-bg", "hsl(220 90% 98%)", "hsl(220 15% 18%)"},
}

// DefaultTheme returns the built-in theme tokens.
func DefaultTheme() Theme {
	return Theme{
		Neutral: Palette{
			0:   "hsl(0 0% 0%)",
			5:   "hsl(220 10% 6%)",
			10:  "hsl(220 9% 10%)",
			20:  "hsl(220 8% 15%)",
			30:  "hsl(220 7% 22%)",
			40:  "hsl(220 7% 30%)",
			50:  "hsl(220 6% 40%)",
			60:  "hsl(220 6% 52%)",
			70:  "hsl(220 7% 65%)",
			80:  "hsl(220 9% 78%)",
			90:  "hsl(220 12% 90%)",
			95:  "hsl(220 14% 96%)",
			100: "hsl(0 0% 100%)",
		},
		Brand: Palette{
			30: "hsl(220 85% 48%)",
			40: "hsl(220 88% 56%)",
			50: "hsl(220 90% 62%)",
			60: "hsl(220 92% 67%)",
		},
		Accent: Palette{
			40: "hsl(260 80% 60%)",
			50: "hsl(260 85% 66%)",
		},
		Success: Palette{
			40: "hsl(150 60% 40%)",
			50: "hsl(150 65% 46%)",
		},
		Warning: Palette{
			40: "hsl(35 90% 55%)",
			50: "hsl(35 95% 60%)",
		},
		Danger: Palette{
			40: "hsl(0 75% 52%)",
			50: "hsl(0 80% 58%)",
		},
		FontSans: `Inter, system-ui, -apple-system, Segoe UI, Roboto, Helvetica, Arial, "Apple Color Emoji", "Segoe UI Emoji"`,
		FontMono: `ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, "Liberation Mono", "Courier New", monospace`,
	}
}

// Variables returns the CSS custom properties the document root carries in
// the given mode.
func (t Theme) Variables(mode Mode) map[string]string {
	vars := make(map[string]string)
	for _, s := range semantic {
		if mode == ModeDark {
			vars[s.name] = s.dark
		} else {
			vars[s.name] = s.light
		}
	}

	groups := []struct {
		name    string
		palette Palette
	}{
		{"neutral", t.Neutral},
		{"brand", t.Brand},
		{"accent", t.Accent},
		{"success", t.Success},
		{"warning", t.Warning},
		{"danger", t.Danger},
	}
	for _, g := range groups {
		for tone, value := range g.palette {
			vars["--color-"+g.name+"-"+strconv.Itoa(tone)] = value
		}
	}

	if t.FontSans != "" {
		vars["--font-sans"] = t.FontSans
	}
	if t.FontMono != "" {
		vars["--font-mono"] = t.FontMono
	}
	return vars
}

// Resolver returns a colour.Resolver over the mode's variables with extra
// layered on top. Values are converted to hex; one level of var()
// indirection is followed.
func (t Theme) Resolver(mode Mode, extra map[string]string) colour.Resolver {
	vars := t.Variables(mode)
	maps.Copy(vars, extra)
	return variableResolver(vars)
}

type variableResolver map[string]string

func (v variableResolver) Resolve(name string) (string, bool) {
	value, ok := v[colour.VarName(name)]
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "var(") {
		if value, ok = v[colour.VarName(value)]; !ok {
			return "", false
		}
	}
	return colour.ToHex(value)
}

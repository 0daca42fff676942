package colour

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var (
	hexRegex      = regexp.MustCompile(`^#([0-9a-f]{3}|[0-9a-f]{4}|[0-9a-f]{6}|[0-9a-f]{8})$`)
	functionRegex = regexp.MustCompile(`^([a-z]+)\(\s*(.*?)\s*\)$`)
	valueRegex    = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+)(?:e[+-]?\d+)?)(%|deg|grad|rad|turn)?$`)
)

// cssNamedColours holds the CSS Color Module 4 names missing from the SVG 1.1
// table in x/image/colornames.
var cssNamedColours = map[string]colorful.Color{
	"rebeccapurple": {R: 0x66 / 255.0, G: 0x33 / 255.0, B: 0x99 / 255.0},
}

// ParseColor parses a CSS colour string. Supported syntaxes are hex (#rgb,
// #rgba, #rrggbb, #rrggbbaa), named colours, rgb(), rgba(), hsl(), hsla(),
// hwb(), oklab() and oklch(). Alpha is accepted and ignored.
func ParseColor(input string) (colorful.Color, bool) {
	s := normalise(input)
	if raw, ok, perceptual := parsePerceptual(s); perceptual {
		if !ok {
			return colorful.Color{}, false
		}
		return oklchToColor(raw.L, raw.C, raw.H), true
	}
	return parseColor(s)
}

func normalise(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// parseColor parses every syntax except oklab() and oklch(). s must be
// normalised.
func parseColor(s string) (colorful.Color, bool) {
	if s == "" {
		return colorful.Color{}, false
	}

	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}

	if s == "transparent" {
		return colorful.Color{}, true
	}

	if named, ok := colornames.Map[s]; ok {
		return colorful.Color{
			R: float64(named.R) / 255.0,
			G: float64(named.G) / 255.0,
			B: float64(named.B) / 255.0,
		}, true
	}
	if named, ok := cssNamedColours[s]; ok {
		return named, true
	}

	name, args, ok := splitFunction(s)
	if !ok {
		return colorful.Color{}, false
	}

	switch name {
	case "rgb", "rgba":
		return parseRGBFunc(args)
	case "hsl", "hsla":
		return parseHSLFunc(args)
	case "hwb":
		return parseHWBFunc(args)
	default:
		return colorful.Color{}, false
	}
}

// parsePerceptual parses oklab() and oklch() into unclamped OKLCH. The last
// result reports whether s used one of those functions at all.
func parsePerceptual(s string) (raw OKLCH, ok, perceptual bool) {
	if !strings.HasPrefix(s, "oklab(") && !strings.HasPrefix(s, "oklch(") {
		return OKLCH{}, false, false
	}

	name, args, ok := splitFunction(s)
	if !ok {
		return OKLCH{}, false, true
	}
	if name == "oklab" {
		raw, ok = parseOKLabFunc(args)
	} else {
		raw, ok = parseOKLCHFunc(args)
	}
	return raw, ok, true
}

func splitFunction(s string) (string, []component, bool) {
	matches := functionRegex.FindStringSubmatch(s)
	if len(matches) != 3 {
		return "", nil, false
	}
	args, ok := splitArgs(matches[2])
	if !ok {
		return "", nil, false
	}
	return matches[1], args, true
}

func parseHexColor(s string) (colorful.Color, bool) {
	if !hexRegex.MatchString(s) {
		return colorful.Color{}, false
	}

	digits := s[1:]
	// Expand shorthand (#rgb, #rgba) to the long form.
	if len(digits) == 3 || len(digits) == 4 {
		var b strings.Builder
		for _, r := range digits {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		digits = b.String()
	}

	rgb, ok := ParseHex(digits[:6])
	if !ok {
		return colorful.Color{}, false
	}

	return colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}, true
}

// component is a single numeric argument of a colour function.
type component struct {
	value float64
	unit  string
}

// splitArgs splits the argument list of a colour function into its three
// colour components, dropping any alpha. Both the legacy comma syntax and the
// modern space syntax with "/ alpha" are accepted.
func splitArgs(raw string) ([]component, bool) {
	if i := strings.Index(raw, "/"); i >= 0 {
		raw = raw[:i]
	}

	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	// Legacy rgba(r, g, b, a) and hsla(h, s, l, a).
	if len(fields) == 4 {
		fields = fields[:3]
	}
	if len(fields) != 3 {
		return nil, false
	}

	comps := make([]component, len(fields))
	for i, f := range fields {
		if f == "none" {
			comps[i] = component{}
			continue
		}
		m := valueRegex.FindStringSubmatch(f)
		if len(m) != 3 {
			return nil, false
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, false
		}
		comps[i] = component{value: v, unit: m[2]}
	}

	return comps, true
}

// angle converts a hue component to degrees.
func (c component) angle() (float64, bool) {
	switch c.unit {
	case "", "deg":
		return c.value, true
	case "rad":
		return c.value * 180 / math.Pi, true
	case "grad":
		return c.value * 0.9, true
	case "turn":
		return c.value * 360, true
	default:
		return 0, false
	}
}

// fraction converts a percentage or bare number to [0,1] given the bare
// number scale (255 for rgb channels, 100 for hsl percentages).
func (c component) fraction(scale float64) (float64, bool) {
	switch c.unit {
	case "%":
		return c.value / 100, true
	case "":
		return c.value / scale, true
	default:
		return 0, false
	}
}

func parseRGBFunc(args []component) (colorful.Color, bool) {
	var ch [3]float64
	for i, a := range args {
		v, ok := a.fraction(255)
		if !ok {
			return colorful.Color{}, false
		}
		ch[i] = v
	}
	return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, true
}

func parseHSLFunc(args []component) (colorful.Color, bool) {
	h, ok := args[0].angle()
	if !ok {
		return colorful.Color{}, false
	}
	s, ok := args[1].fraction(100)
	if !ok {
		return colorful.Color{}, false
	}
	l, ok := args[2].fraction(100)
	if !ok {
		return colorful.Color{}, false
	}
	return colorful.Hsl(WrapHue(h), clamp(s, 0, 1), clamp(l, 0, 1)), true
}

func parseHWBFunc(args []component) (colorful.Color, bool) {
	h, ok := args[0].angle()
	if !ok {
		return colorful.Color{}, false
	}
	w, ok := args[1].fraction(100)
	if !ok {
		return colorful.Color{}, false
	}
	bk, ok := args[2].fraction(100)
	if !ok {
		return colorful.Color{}, false
	}
	w, bk = clamp(w, 0, 1), clamp(bk, 0, 1)

	if w+bk >= 1 {
		grey := w / (w + bk)
		return colorful.Color{R: grey, G: grey, B: grey}, true
	}

	pure := colorful.Hsv(WrapHue(h), 1, 1)
	scale := 1 - w - bk
	return colorful.Color{
		R: pure.R*scale + w,
		G: pure.G*scale + w,
		B: pure.B*scale + w,
	}, true
}

func parseOKLabFunc(args []component) (OKLCH, bool) {
	l, ok := args[0].fraction(1)
	if !ok {
		return OKLCH{}, false
	}
	a, ok := args[1].fraction(1)
	if !ok {
		return OKLCH{}, false
	}
	b, ok := args[2].fraction(1)
	if !ok {
		return OKLCH{}, false
	}
	// Percentages for a and b are relative to 0.4.
	if args[1].unit == "%" {
		a *= MaxChroma
	}
	if args[2].unit == "%" {
		b *= MaxChroma
	}
	return OKLCH{L: l, C: math.Hypot(a, b), H: WrapHue(math.Atan2(b, a) * 180 / math.Pi)}, true
}

func parseOKLCHFunc(args []component) (OKLCH, bool) {
	l, ok := args[0].fraction(1)
	if !ok {
		return OKLCH{}, false
	}
	c, ok := args[1].fraction(1)
	if !ok {
		return OKLCH{}, false
	}
	if args[1].unit == "%" {
		c *= MaxChroma
	}
	h, ok := args[2].angle()
	if !ok {
		return OKLCH{}, false
	}
	return OKLCH{L: l, C: c, H: WrapHue(h)}, true
}

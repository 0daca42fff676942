package colour

// ScaleSize is the number of steps in every generated scale.
const ScaleSize = 10

// referenceLightness holds the OKLCH lightness of each scale step, light to dark.
var referenceLightness = [ScaleSize]float64{
	0.96, 0.92, 0.86, 0.78, 0.70, 0.62, 0.53, 0.44, 0.36, 0.28,
}

var stepLabels = [ScaleSize]string{
	"50", "100", "200", "300", "400", "500", "600", "700", "800", "900",
}

// ColorStep is one entry of a generated scale. ID is the step's stable
// position (0-9) and is what locks refer to.
type ColorStep struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Hex   string `json:"hex"`
	OKLCH OKLCH  `json:"oklch"`
}

// LockSet marks step IDs whose previous value must survive regeneration.
type LockSet map[int]bool

// Clone returns an independent copy of the lock set.
func (l LockSet) Clone() LockSet {
	out := make(LockSet, len(l))
	for id, locked := range l {
		out[id] = locked
	}
	return out
}

// ScaleOptions tunes scale generation. The zero value applies a chroma
// multiplier of 0; use DefaultScaleOptions for the identity transform.
type ScaleOptions struct {
	HueShift      float64
	ChromaScale   float64
	LightnessBias float64
	Locks         LockSet
	Previous      []ColorStep
}

// DefaultScaleOptions returns options that reproduce the seed's hue and chroma.
func DefaultScaleOptions() ScaleOptions {
	return ScaleOptions{ChromaScale: 1}
}

// ReferenceLightness returns the fixed lightness stops, light to dark.
func ReferenceLightness() []float64 {
	return append([]float64(nil), referenceLightness[:]...)
}

// StepLabels returns the fixed step labels in scale order.
func StepLabels() []string {
	return append([]string(nil), stepLabels[:]...)
}

// GenerateScale builds a ten step OKLCH ramp from seed.
//
// Every step takes the seed's chroma (times ChromaScale) and hue (plus
// HueShift) at its reference lightness (plus LightnessBias). Locked steps
// present in opts.Previous are returned unchanged. If seed cannot be parsed
// the previous scale is returned as is, or FallbackScale when there is none.
func GenerateScale(seed string, opts ScaleOptions) []ColorStep {
	base, ok := ParseToOKLCH(seed)
	if !ok {
		if len(opts.Previous) > 0 {
			return opts.Previous
		}
		return FallbackScale()
	}

	chroma := clamp(base.C*opts.ChromaScale, 0, MaxChroma)
	hue := WrapHue(base.H + opts.HueShift)

	steps := make([]ColorStep, ScaleSize)
	for i, stop := range referenceLightness {
		if opts.Locks[i] {
			if existing, found := FindStep(opts.Previous, i); found {
				steps[i] = existing
				continue
			}
		}

		computed := OKLCH{
			L: clamp(stop+opts.LightnessBias, 0, 1),
			C: chroma,
			H: hue,
		}

		steps[i] = ColorStep{
			ID:    i,
			Label: stepLabels[i],
			Hex:   FormatHex(computed),
			OKLCH: computed,
		}
	}

	return steps
}

// FallbackScale is the achromatic scale returned for an unparseable seed
// when there is no previous scale to keep.
func FallbackScale() []ColorStep {
	steps := make([]ColorStep, ScaleSize)
	for i, stop := range referenceLightness {
		steps[i] = ColorStep{
			ID:    i,
			Label: stepLabels[i],
			Hex:   BlackHex,
			OKLCH: OKLCH{L: stop},
		}
	}
	return steps
}

// FindStep returns the step with the given ID, searching by identity rather
// than by position.
func FindStep(steps []ColorStep, id int) (ColorStep, bool) {
	for _, step := range steps {
		if step.ID == id {
			return step, true
		}
	}
	return ColorStep{}, false
}

// Package palettes provides the built-in palette templates.
package palettes

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/tonal/internal/colour"
)

const (
	// DefaultID is the template a new project starts from.
	DefaultID = "modern-violet"

	// CustomID marks a project whose parameters no longer match any template.
	CustomID = "custom"
)

//go:embed templates.yaml
var templatesYAML []byte

// PaletteTemplate is a named set of scale generation parameters.
type PaletteTemplate struct {
	ID            string   `yaml:"id" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	Description   string   `yaml:"description" json:"description"`
	ColorSeed     string   `yaml:"colorSeed" json:"colorSeed"`
	HueShift      float64  `yaml:"hueShift" json:"hueShift"`
	ChromaScale   float64  `yaml:"chromaScale" json:"chromaScale"`
	LightnessBias float64  `yaml:"lightnessBias" json:"lightnessBias"`
	Steps         []string `yaml:"steps" json:"steps"`
}

// ScaleOptions returns the template's generation parameters with no locks.
func (p PaletteTemplate) ScaleOptions() colour.ScaleOptions {
	return colour.ScaleOptions{
		HueShift:      p.HueShift,
		ChromaScale:   p.ChromaScale,
		LightnessBias: p.LightnessBias,
	}
}

// Generate builds the template's scale from scratch.
func (p PaletteTemplate) Generate() []colour.ColorStep {
	return colour.GenerateScale(p.ColorSeed, p.ScaleOptions())
}

var templates = mustLoad(templatesYAML)

func mustLoad(data []byte) []PaletteTemplate {
	out, err := load(data)
	if err != nil {
		panic(err)
	}
	return out
}

func load(data []byte) ([]PaletteTemplate, error) {
	var out []PaletteTemplate
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse palette templates: %w", err)
	}

	seen := make(map[string]bool, len(out))
	for _, t := range out {
		if t.ID == "" {
			return nil, fmt.Errorf("palette template %q has no id", t.Name)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate palette template id %q", t.ID)
		}
		seen[t.ID] = true
		if _, ok := colour.ParseToOKLCH(t.ColorSeed); !ok {
			return nil, fmt.Errorf("palette template %q has invalid seed %q", t.ID, t.ColorSeed)
		}
	}
	return out, nil
}

// All returns every built-in template in declaration order.
func All() []PaletteTemplate {
	out := make([]PaletteTemplate, len(templates))
	for i, t := range templates {
		t.Steps = append([]string(nil), t.Steps...)
		out[i] = t
	}
	return out
}

// Get looks a template up by id.
func Get(id string) (PaletteTemplate, bool) {
	for _, t := range All() {
		if t.ID == id {
			return t, true
		}
	}
	return PaletteTemplate{}, false
}

// Default returns the default template, or the first one if it is missing.
func Default() PaletteTemplate {
	if t, ok := Get(DefaultID); ok {
		return t
	}
	return All()[0]
}

// IDs returns the ids of all built-in templates.
func IDs() []string {
	ids := make([]string, len(templates))
	for i, t := range templates {
		ids[i] = t.ID
	}
	return ids
}

// Package tokens holds the token set handed to exporters and the built-in
// theme tokens used to resolve gradient and contrast references.
package tokens

import (
	"errors"
	"strings"

	"github.com/jmylchreest/tonal/internal/colour"
	"github.com/jmylchreest/tonal/internal/typography"
)

// ErrEmptyScale is returned when a token set is built without colour steps.
var ErrEmptyScale = errors.New("token set has no colour scale")

// Set is the exportable token data: the brand colour scale and typography.
type Set struct {
	Scale      []colour.ColorStep    `json:"scale"`
	Typography typography.Typography `json:"typography"`
}

// NewSet builds a token set. The scale must not be empty.
func NewSet(scale []colour.ColorStep, typo typography.Typography) (*Set, error) {
	if len(scale) == 0 {
		return nil, ErrEmptyScale
	}
	return &Set{Scale: scale, Typography: typo}, nil
}

// Color is a scale step flattened for output.
type Color struct {
	Label string
	Hex   string
}

// Colors returns the scale in order with uppercase hex values.
func (s *Set) Colors() []Color {
	out := make([]Color, len(s.Scale))
	for i, step := range s.Scale {
		out[i] = Color{Label: step.Label, Hex: strings.ToUpper(step.Hex)}
	}
	return out
}

// FontFamily returns the configured font or the default when unset.
func (s *Set) FontFamily() string {
	if s.Typography.Font == "" {
		return typography.DefaultFont
	}
	return s.Typography.Font
}

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jmylchreest/tonal/internal/colour"
	"github.com/jmylchreest/tonal/internal/typography"
)

// ContrastSelection is the foreground/background pair under evaluation.
type ContrastSelection struct {
	Foreground string `json:"foreground"`
	Background string `json:"background"`
}

// ProjectSnapshot is a saved copy of the editable state.
type ProjectSnapshot struct {
	ID            uuid.UUID             `json:"id"`
	ColorSeed     string                `json:"colorSeed" validate:"required"`
	HueShift      float64               `json:"hueShift"`
	ChromaScale   float64               `json:"chromaScale" validate:"gte=0"`
	LightnessBias float64               `json:"lightnessBias"`
	Locks         colour.LockSet        `json:"locks"`
	Scale         []colour.ColorStep    `json:"scale" validate:"len=10,dive"`
	Typography    typography.Typography `json:"typography"`
	Contrast      ContrastSelection     `json:"contrast"`
	UpdatedAt     time.Time             `json:"updatedAt"`
	TemplateID    string                `json:"templateId,omitempty"`
}

// ExportEnvelope wraps a snapshot for sharing as a standalone file.
type ExportEnvelope struct {
	Name       string          `json:"name"`
	ExportedAt time.Time       `json:"exportedAt"`
	Snapshot   ProjectSnapshot `json:"snapshot"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that a snapshot carries a seed and a full scale.
func (p ProjectSnapshot) Validate() error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid project snapshot: field %s failed %q", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid project snapshot: %w", err)
	}
	return nil
}

// ParseImport decodes an exported project. data may be an ExportEnvelope or a
// bare snapshot; fallbackName is used when the envelope has no name.
func ParseImport(data []byte, fallbackName string) (string, ProjectSnapshot, error) {
	var probe struct {
		Name     string           `json:"name"`
		Snapshot *json.RawMessage `json:"snapshot"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", ProjectSnapshot{}, fmt.Errorf("failed to parse project: %w", err)
	}

	payload := data
	name := fallbackName
	if probe.Snapshot != nil {
		payload = *probe.Snapshot
		if probe.Name != "" {
			name = probe.Name
		}
	}

	var snap ProjectSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return "", ProjectSnapshot{}, fmt.Errorf("failed to parse project snapshot: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return "", ProjectSnapshot{}, err
	}
	return name, snap, nil
}

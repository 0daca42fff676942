// Package store holds the editable token state: seed and tuning parameters,
// locks, the current scale, typography, the contrast pair and saved projects.
//
// A Store is owned by its caller and is not safe for concurrent use.
package store

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tonal/internal/colour"
	"github.com/jmylchreest/tonal/internal/palettes"
	"github.com/jmylchreest/tonal/internal/tokens"
	"github.com/jmylchreest/tonal/internal/typography"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrStepNotFound     = errors.New("step not found")
	ErrInvalidColour    = errors.New("invalid colour")
)

// Fallback contrast pair used when the scale lacks the default steps.
const (
	fallbackForeground = "#111111"
	fallbackBackground = "#FFFFFF"
)

// Default contrast pair positions within a scale.
const (
	defaultForegroundStep = 7
	defaultBackgroundStep = 1
)

// State is the persisted content of a Store.
type State struct {
	ColorSeed          string                     `json:"colorSeed"`
	HueShift           float64                    `json:"hueShift"`
	ChromaScale        float64                    `json:"chromaScale"`
	LightnessBias      float64                    `json:"lightnessBias"`
	SelectedTemplateID string                     `json:"selectedTemplateId"`
	Locks              colour.LockSet             `json:"locks"`
	Scale              []colour.ColorStep         `json:"scale"`
	Typography         typography.Typography      `json:"typography"`
	Contrast           ContrastSelection          `json:"contrast"`
	SavedProjects      map[string]ProjectSnapshot `json:"savedProjects"`
}

// Store applies editing actions to a State.
type Store struct {
	state  State
	logger hclog.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger actions report through.
func WithLogger(l hclog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithClock overrides the time source used for snapshot timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New returns a store initialised from the default template.
func New(opts ...Option) *Store {
	s := &Store{
		logger: hclog.NewNullLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = defaultState()
	return s
}

func defaultState() State {
	tmpl := palettes.Default()
	scale := tmpl.Generate()
	return State{
		ColorSeed:          tmpl.ColorSeed,
		HueShift:           tmpl.HueShift,
		ChromaScale:        tmpl.ChromaScale,
		LightnessBias:      tmpl.LightnessBias,
		SelectedTemplateID: tmpl.ID,
		Locks:              colour.LockSet{},
		Scale:              scale,
		Typography:         typography.Default(),
		Contrast:           defaultContrast(scale),
		SavedProjects:      map[string]ProjectSnapshot{},
	}
}

func defaultContrast(scale []colour.ColorStep) ContrastSelection {
	sel := ContrastSelection{Foreground: fallbackForeground, Background: fallbackBackground}
	if len(scale) > defaultForegroundStep {
		sel.Foreground = scale[defaultForegroundStep].Hex
	}
	if len(scale) > defaultBackgroundStep {
		sel.Background = scale[defaultBackgroundStep].Hex
	}
	return sel
}

// State returns a copy of the current state.
func (s *Store) State() State {
	st := s.state
	st.Locks = st.Locks.Clone()
	st.Scale = slices.Clone(st.Scale)
	st.Typography.Scale = slices.Clone(st.Typography.Scale)
	st.SavedProjects = maps.Clone(st.SavedProjects)
	return st
}

// Scale returns a copy of the current scale.
func (s *Store) Scale() []colour.ColorStep {
	return slices.Clone(s.state.Scale)
}

// Locks returns a copy of the lock set.
func (s *Store) Locks() colour.LockSet {
	return s.state.Locks.Clone()
}

// SetSeed changes the seed colour, marks the project custom and regenerates.
func (s *Store) SetSeed(seed string) {
	s.state.ColorSeed = seed
	s.markCustom()
	s.Regenerate()
}

// SetHueShift changes the hue shift, marks the project custom and regenerates.
func (s *Store) SetHueShift(v float64) {
	s.state.HueShift = v
	s.markCustom()
	s.Regenerate()
}

// SetChromaScale changes the chroma multiplier, marks the project custom and
// regenerates.
func (s *Store) SetChromaScale(v float64) {
	s.state.ChromaScale = v
	s.markCustom()
	s.Regenerate()
}

// SetLightnessBias changes the lightness bias, marks the project custom and
// regenerates.
func (s *Store) SetLightnessBias(v float64) {
	s.state.LightnessBias = v
	s.markCustom()
	s.Regenerate()
}

func (s *Store) markCustom() {
	s.state.SelectedTemplateID = palettes.CustomID
}

// ToggleLock flips the lock on step id and returns its new state. The scale
// is not regenerated.
func (s *Store) ToggleLock(id int) (bool, error) {
	if _, ok := colour.FindStep(s.state.Scale, id); !ok {
		return false, fmt.Errorf("%w: %d", ErrStepNotFound, id)
	}
	if s.state.Locks == nil {
		s.state.Locks = colour.LockSet{}
	}
	s.state.Locks[id] = !s.state.Locks[id]
	s.logger.Debug("toggled lock", "step", id, "locked", s.state.Locks[id])
	return s.state.Locks[id], nil
}

// Regenerate rebuilds the scale from the current parameters, keeping locked
// steps from the current scale.
func (s *Store) Regenerate() {
	s.state.Scale = colour.GenerateScale(s.state.ColorSeed, colour.ScaleOptions{
		HueShift:      s.state.HueShift,
		ChromaScale:   s.state.ChromaScale,
		LightnessBias: s.state.LightnessBias,
		Locks:         s.state.Locks.Clone(),
		Previous:      s.state.Scale,
	})
	s.logger.Debug("regenerated scale", "seed", s.state.ColorSeed, "locks", len(s.lockedIDs()))
}

func (s *Store) lockedIDs() []int {
	var ids []int
	for id, locked := range s.state.Locks {
		if locked {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// SetStepHex overrides a single step with an explicit colour and marks the
// project custom. The override survives regeneration only while the step is
// locked.
func (s *Store) SetStepHex(id int, value string) error {
	idx := slices.IndexFunc(s.state.Scale, func(step colour.ColorStep) bool { return step.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrStepNotFound, id)
	}
	hex, ok := colour.ToHex(value)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidColour, value)
	}
	oklch, _ := colour.ParseToOKLCH(hex)

	s.state.Scale = slices.Clone(s.state.Scale)
	s.state.Scale[idx].Hex = hex
	s.state.Scale[idx].OKLCH = oklch
	s.markCustom()
	return nil
}

// TypographyUpdate carries the typography fields to change. Nil fields are
// left as they are.
type TypographyUpdate struct {
	Font     *string
	BaseSize *float64
	Ratio    *float64
}

// SetTypography applies u and recomputes the type scale.
func (s *Store) SetTypography(u TypographyUpdate) {
	t := s.state.Typography
	if u.Font != nil {
		t.Font = *u.Font
	}
	if u.BaseSize != nil {
		t.BaseSize = *u.BaseSize
	}
	if u.Ratio != nil {
		t.Ratio = *u.Ratio
	}
	t.Scale = typography.CreateTypeScale(t.BaseSize, t.Ratio)
	s.state.Typography = t
}

// Typography returns the current typography.
func (s *Store) Typography() typography.Typography {
	t := s.state.Typography
	t.Scale = slices.Clone(t.Scale)
	return t
}

// SetContrastSelection replaces the non-empty sides of the contrast pair.
func (s *Store) SetContrastSelection(foreground, background string) {
	if foreground != "" {
		s.state.Contrast.Foreground = foreground
	}
	if background != "" {
		s.state.Contrast.Background = background
	}
}

// ContrastSelection returns the current contrast pair.
func (s *Store) ContrastSelection() ContrastSelection {
	return s.state.Contrast
}

// Contrast evaluates the current contrast pair.
func (s *Store) Contrast() colour.ContrastResult {
	return colour.EvaluateContrast(s.state.Contrast.Foreground, s.state.Contrast.Background)
}

// Snapshot captures the editable state as a project snapshot.
func (s *Store) Snapshot() ProjectSnapshot {
	st := s.State()
	return ProjectSnapshot{
		ID:            uuid.New(),
		ColorSeed:     st.ColorSeed,
		HueShift:      st.HueShift,
		ChromaScale:   st.ChromaScale,
		LightnessBias: st.LightnessBias,
		Locks:         st.Locks,
		Scale:         st.Scale,
		Typography:    st.Typography,
		Contrast:      st.Contrast,
		UpdatedAt:     s.now().UTC(),
		TemplateID:    st.SelectedTemplateID,
	}
}

// SaveProject stores a snapshot under name, replacing any project with that
// name. Blank names are ignored and report false.
func (s *Store) SaveProject(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	snap := s.Snapshot()
	if existing, ok := s.state.SavedProjects[name]; ok && existing.ID != uuid.Nil {
		snap.ID = existing.ID
	}
	s.putProject(name, snap)
	s.logger.Debug("saved project", "name", name, "id", snap.ID)
	return true
}

func (s *Store) putProject(name string, snap ProjectSnapshot) {
	if s.state.SavedProjects == nil {
		s.state.SavedProjects = map[string]ProjectSnapshot{}
	}
	s.state.SavedProjects[name] = snap
}

// LoadProject replaces the editable state with the named project.
func (s *Store) LoadProject(name string) error {
	snap, ok := s.state.SavedProjects[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}
	s.apply(snap)
	return nil
}

// Project returns the named project.
func (s *Store) Project(name string) (ProjectSnapshot, bool) {
	snap, ok := s.state.SavedProjects[name]
	return snap, ok
}

// Projects returns the saved project names in sorted order.
func (s *Store) Projects() []string {
	return slices.Sorted(maps.Keys(s.state.SavedProjects))
}

// RemoveProject deletes the named project.
func (s *Store) RemoveProject(name string) error {
	if _, ok := s.state.SavedProjects[name]; !ok {
		return fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}
	delete(s.state.SavedProjects, name)
	return nil
}

// ImportProject saves snap under name and makes it the current state.
func (s *Store) ImportProject(snap ProjectSnapshot, name string) {
	if snap.ID == uuid.Nil {
		snap.ID = uuid.New()
	}
	s.putProject(name, snap)
	s.apply(snap)
}

func (s *Store) apply(snap ProjectSnapshot) {
	s.state.ColorSeed = snap.ColorSeed
	s.state.HueShift = snap.HueShift
	s.state.ChromaScale = snap.ChromaScale
	s.state.LightnessBias = snap.LightnessBias
	s.state.Locks = snap.Locks.Clone()
	s.state.Scale = slices.Clone(snap.Scale)
	s.state.Typography = snap.Typography
	s.state.Typography.Scale = slices.Clone(snap.Typography.Scale)
	s.state.Contrast = snap.Contrast
	s.state.SelectedTemplateID = snap.TemplateID
	if s.state.SelectedTemplateID == "" {
		s.state.SelectedTemplateID = palettes.CustomID
	}
}

// ApplyTemplate switches to a built-in template. Locks are cleared, the
// scale is regenerated from scratch and the contrast pair reset to the
// template's defaults.
func (s *Store) ApplyTemplate(id string) error {
	tmpl, ok := palettes.Get(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}

	scale := tmpl.Generate()
	s.state.ColorSeed = tmpl.ColorSeed
	s.state.HueShift = tmpl.HueShift
	s.state.ChromaScale = tmpl.ChromaScale
	s.state.LightnessBias = tmpl.LightnessBias
	s.state.Locks = colour.LockSet{}
	s.state.Scale = scale
	s.state.SelectedTemplateID = tmpl.ID
	s.state.Contrast = defaultContrast(scale)
	s.logger.Debug("applied template", "template", tmpl.ID)
	return nil
}

// SelectedTemplateID returns the active template id or palettes.CustomID.
func (s *Store) SelectedTemplateID() string {
	return s.state.SelectedTemplateID
}

// Reset restores the default template and typography. Saved projects are kept.
func (s *Store) Reset() {
	saved := s.state.SavedProjects
	s.state = defaultState()
	if saved != nil {
		s.state.SavedProjects = saved
	}
}

// TokenSet returns the current scale and typography for export.
func (s *Store) TokenSet() (*tokens.Set, error) {
	return tokens.NewSet(s.Scale(), s.Typography())
}

package cli

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/tonal/internal/colour"
	"github.com/jmylchreest/tonal/internal/config"
	"github.com/jmylchreest/tonal/internal/palettes"
	"github.com/jmylchreest/tonal/internal/store"
)

// session is the state store a command works on.
type session struct {
	store *store.Store
	path  string
}

// openSession loads the persisted state and brings it in line with cfg.
func openSession(cfg *config.Config) (*session, error) {
	path, err := statePath(cfg)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(path, store.WithLogger(logger.Named("store")))
	if err != nil {
		return nil, err
	}
	if err := applyConfig(st, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", configName(cfg), err)
	}
	return &session{store: st, path: path}, nil
}

// save persists the state unless --no-save was given.
func (s *session) save() error {
	if globalNoSave {
		logger.Debug("not saving state", "path", s.path)
		return nil
	}
	return s.store.Save(s.path)
}

func configName(cfg *config.Config) string {
	if cfg.Path != "" {
		return cfg.Path
	}
	return "environment"
}

// applyConfig makes the store match the values set in cfg. Only values that
// differ are applied, so running it again on its own result changes nothing
// and edits made through other commands survive.
func applyConfig(st *store.Store, cfg *config.Config) error {
	if err := applyScaleParams(st, cfg); err != nil {
		return err
	}

	locks := st.Locks()
	for _, id := range cfg.Locks {
		if locks[id] {
			continue
		}
		if _, err := st.ToggleLock(id); err != nil {
			return err
		}
	}

	for ref, value := range cfg.Overrides {
		id, ok := config.StepID(ref)
		if !ok {
			return fmt.Errorf("unknown step %q", ref)
		}
		step, _ := colour.FindStep(st.Scale(), id)
		if hex, ok := colour.ToHex(value); ok && strings.EqualFold(hex, step.Hex) {
			continue
		}
		if err := st.SetStepHex(id, value); err != nil {
			return err
		}
	}

	if t := cfg.Typography; t != nil {
		cur := st.Typography()
		var u store.TypographyUpdate
		changed := false
		if t.Font != "" && t.Font != cur.Font {
			u.Font, changed = &t.Font, true
		}
		if t.BaseSize != 0 && t.BaseSize != cur.BaseSize {
			u.BaseSize, changed = &t.BaseSize, true
		}
		if t.Ratio != 0 && t.Ratio != cur.Ratio {
			u.Ratio, changed = &t.Ratio, true
		}
		if changed {
			st.SetTypography(u)
		}
	}

	if c := cfg.Contrast; c != nil {
		fg, bg := "", ""
		var err error
		if c.Foreground != "" {
			if fg, err = resolveColourRef(st, c.Foreground); err != nil {
				return err
			}
		}
		if c.Background != "" {
			if bg, err = resolveColourRef(st, c.Background); err != nil {
				return err
			}
		}
		cur := st.ContrastSelection()
		if strings.EqualFold(fg, cur.Foreground) {
			fg = ""
		}
		if strings.EqualFold(bg, cur.Background) {
			bg = ""
		}
		st.SetContrastSelection(fg, bg)
	}
	return nil
}

type scaleParams struct {
	seed          string
	hueShift      float64
	chromaScale   float64
	lightnessBias float64
}

// applyScaleParams applies the template and ramp parameters. A template on
// its own selects it; a template with explicit parameters supplies the
// values those parameters leave unset.
func applyScaleParams(st *store.Store, cfg *config.Config) error {
	state := st.State()
	want := scaleParams{state.ColorSeed, state.HueShift, state.ChromaScale, state.LightnessBias}

	if cfg.Template != "" {
		tmpl, ok := palettes.Get(cfg.Template)
		if !ok {
			return fmt.Errorf("%w: %q", store.ErrTemplateNotFound, cfg.Template)
		}
		pure := cfg.Seed == "" && cfg.HueShift == nil && cfg.ChromaScale == nil && cfg.LightnessBias == nil
		if pure {
			if state.SelectedTemplateID == tmpl.ID {
				return nil
			}
			return st.ApplyTemplate(tmpl.ID)
		}
		want = scaleParams{tmpl.ColorSeed, tmpl.HueShift, tmpl.ChromaScale, tmpl.LightnessBias}
	}

	if cfg.Seed != "" {
		want.seed = cfg.Seed
	}
	if cfg.HueShift != nil {
		want.hueShift = *cfg.HueShift
	}
	if cfg.ChromaScale != nil {
		want.chromaScale = *cfg.ChromaScale
	}
	if cfg.LightnessBias != nil {
		want.lightnessBias = *cfg.LightnessBias
	}
	setScaleParams(st, want)
	return nil
}

// setScaleParams calls the store setters for the parameters that differ.
func setScaleParams(st *store.Store, want scaleParams) {
	state := st.State()
	if want.seed != state.ColorSeed {
		st.SetSeed(want.seed)
	}
	if want.hueShift != state.HueShift {
		st.SetHueShift(want.hueShift)
	}
	if want.chromaScale != state.ChromaScale {
		st.SetChromaScale(want.chromaScale)
	}
	if want.lightnessBias != state.LightnessBias {
		st.SetLightnessBias(want.lightnessBias)
	}
}

// resolveColourRef turns a colour or a step reference ("700", "7") into hex.
func resolveColourRef(st *store.Store, ref string) (string, error) {
	if hex, ok := colour.ToHex(ref); ok {
		return hex, nil
	}
	if id, ok := config.StepID(ref); ok {
		if step, found := colour.FindStep(st.Scale(), id); found {
			return step.Hex, nil
		}
		return "", fmt.Errorf("%w: %d", store.ErrStepNotFound, id)
	}
	return "", fmt.Errorf("%w: %q", store.ErrInvalidColour, ref)
}

// parseStepRef resolves a step reference or fails with a usage error.
func parseStepRef(ref string) (int, error) {
	id, ok := config.StepID(ref)
	if !ok {
		return 0, fmt.Errorf("invalid step %q: use an id 0-%d or a label such as 500", ref, colour.ScaleSize-1)
	}
	return id, nil
}

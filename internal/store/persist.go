package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmylchreest/tonal/internal/palettes"
)

// StateVersion is the version written to persisted state files.
const StateVersion = 2

// StateFileName is the name of the persisted state file.
const StateFileName = "state.json"

type persisted struct {
	Version int   `json:"version"`
	State   State `json:"state"`
}

// MarshalJSON encodes the store state together with its version.
func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(persisted{Version: StateVersion, State: s.State()})
}

// Load replaces the store state with state decoded from r. Older versions
// are migrated; missing fields keep their defaults.
func (s *Store) Load(r io.Reader) error {
	p := persisted{State: defaultState()}
	p.State.SelectedTemplateID = ""
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return fmt.Errorf("failed to decode state: %w", err)
	}
	if p.Version > StateVersion {
		return fmt.Errorf("state version %d is newer than supported version %d", p.Version, StateVersion)
	}
	if p.Version < 2 {
		migrateV1(&p.State)
	}
	if p.State.SelectedTemplateID == "" {
		p.State.SelectedTemplateID = palettes.CustomID
	}
	if len(p.State.Scale) == 0 {
		p.State.Scale = defaultState().Scale
	}

	s.state = p.State
	s.logger.Debug("loaded state", "version", p.Version, "projects", len(p.State.SavedProjects))
	return nil
}

// Version 1 state predates template tracking.
func migrateV1(st *State) {
	if st.SelectedTemplateID == "" {
		st.SelectedTemplateID = palettes.CustomID
	}
	for name, snap := range st.SavedProjects {
		if snap.TemplateID == "" {
			snap.TemplateID = palettes.CustomID
			st.SavedProjects[name] = snap
		}
	}
}

// DefaultStateDir returns $XDG_STATE_HOME/tonal, falling back to
// ~/.local/state/tonal.
func DefaultStateDir() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "tonal"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "tonal"), nil
}

// Open returns a store loaded from path. A missing file yields a default
// store.
func Open(path string, opts ...Option) (*Store, error) {
	s := New(opts...)

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("no state file, using defaults", "path", path)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open state file: %w", err)
	}
	defer f.Close()

	if err := s.Load(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save writes the store state to path atomically.
func (s *Store) Save(path string) error {
	data, err := json.MarshalIndent(persisted{Version: StateVersion, State: s.State()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	s.logger.Debug("saved state", "path", path)
	return nil
}

// ExportProject wraps the named project in an envelope.
func (s *Store) ExportProject(name string) (ExportEnvelope, error) {
	snap, ok := s.state.SavedProjects[name]
	if !ok {
		return ExportEnvelope{}, fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}
	return ExportEnvelope{Name: name, ExportedAt: s.now().UTC(), Snapshot: snap}, nil
}

// ExportCurrent wraps a snapshot of the current state in an envelope.
func (s *Store) ExportCurrent(name string) ExportEnvelope {
	return ExportEnvelope{Name: name, ExportedAt: s.now().UTC(), Snapshot: s.Snapshot()}
}

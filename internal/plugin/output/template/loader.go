// Package template loads exporter templates, preferring user overrides in
// ~/.config/tonal/templates/<plugin>/ over the embedded defaults.
package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/hashicorp/go-hclog"
)

// ErrTemplateExists is returned by Dump when an override is already present.
var ErrTemplateExists = errors.New("custom template already exists")

// Loader reads a plugin's templates.
type Loader struct {
	pluginName string
	embedFS    fs.FS
	customBase string
	logger     hclog.Logger
}

// DefaultCustomBase returns ~/.config/tonal/templates, honouring
// $XDG_CONFIG_HOME.
func DefaultCustomBase() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "tonal", "templates")
	}
	return filepath.Join(".config", "tonal", "templates")
}

// New creates a loader for pluginName backed by embedFS, usually an
// embed.FS holding the plugin's *.tmpl files.
func New(pluginName string, embedFS fs.FS) *Loader {
	return &Loader{
		pluginName: pluginName,
		embedFS:    embedFS,
		customBase: DefaultCustomBase(),
		logger:     hclog.NewNullLogger(),
	}
}

// WithCustomBase sets the directory searched for overrides.
func (l *Loader) WithCustomBase(customBase string) *Loader {
	l.customBase = customBase
	return l
}

// WithLogger sets the logger template resolution is reported to.
func (l *Loader) WithLogger(logger hclog.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Load reads filename, checking for a custom override first. fromCustom
// reports which source was used.
func (l *Loader) Load(filename string) (content []byte, fromCustom bool, err error) {
	customPath := l.CustomPath(filename)
	if content, err := os.ReadFile(customPath); err == nil {
		l.logger.Debug("using custom template", "path", customPath)
		return content, true, nil
	}

	l.logger.Debug("using embedded template", "plugin", l.pluginName, "template", filename)
	content, err = fs.ReadFile(l.embedFS, filename)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", filename, err)
	}
	return content, false, nil
}

// CustomPath returns where an override for filename would live.
func (l *Loader) CustomPath(filename string) string {
	return filepath.Join(l.customBase, l.pluginName, filename)
}

// Embedded lists the embedded template files.
func (l *Loader) Embedded() ([]string, error) {
	var names []string
	err := fs.WalkDir(l.embedFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".tmpl" {
			names = append(names, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

// Dump copies an embedded template to its override location so it can be
// edited. Existing overrides are kept unless force is set.
func (l *Loader) Dump(filename string, force bool) (string, error) {
	content, err := fs.ReadFile(l.embedFS, filename)
	if err != nil {
		return "", fmt.Errorf("failed to read embedded template %q: %w", filename, err)
	}

	out := l.CustomPath(filename)
	if !force {
		if _, err := os.Stat(out); err == nil {
			return out, fmt.Errorf("%w: %s (use --force to overwrite)", ErrTemplateExists, out)
		}
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %q: %w", filepath.Dir(out), err)
	}
	if err := os.WriteFile(out, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write template to %q: %w", out, err)
	}
	return out, nil
}

// DumpAll dumps every embedded template. Existing overrides are skipped
// unless force is set; skipped paths are reported in the error.
func (l *Loader) DumpAll(force bool) ([]string, error) {
	names, err := l.Embedded()
	if err != nil {
		return nil, err
	}

	var dumped []string
	var skipped []error
	for _, name := range names {
		out, err := l.Dump(name, force)
		if errors.Is(err, ErrTemplateExists) {
			skipped = append(skipped, err)
			continue
		}
		if err != nil {
			return dumped, err
		}
		dumped = append(dumped, out)
	}
	return dumped, errors.Join(skipped...)
}

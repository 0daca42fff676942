// Package manager combines built-in and external token exporters.
package manager

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tonal/internal/plugin/executor"
	"github.com/jmylchreest/tonal/internal/plugin/output"
	"github.com/jmylchreest/tonal/internal/plugin/output/cssvars"
	"github.com/jmylchreest/tonal/internal/plugin/output/jsontokens"
	"github.com/jmylchreest/tonal/internal/plugin/output/tailwind"
)

// ErrUnknownFormat is returned by Resolve for names no exporter answers to.
var ErrUnknownFormat = errors.New("unknown export format")

// Config holds plugin configuration.
type Config struct {
	// External maps exporter names to plugin executables.
	External map[string]string
}

// Builder provides a fluent interface for constructing a Manager with configuration.
type Builder struct {
	config       Config
	registry     *output.Registry
	logger       hclog.Logger
	executorOpts []executor.Option
	builtins     bool
}

// NewBuilder creates a new Manager builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		registry: output.NewRegistry(),
		logger:   hclog.NewNullLogger(),
		builtins: true,
	}
}

// WithConfig sets the configuration for the manager.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithLogger sets the logger passed to exporters and executors.
func (b *Builder) WithLogger(logger hclog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// WithExecutorOptions sets options applied to every external plugin executor.
func (b *Builder) WithExecutorOptions(opts ...executor.Option) *Builder {
	b.executorOpts = append(b.executorOpts, opts...)
	return b
}

// WithCustomRegistry allows providing a custom plugin registry (useful for
// testing). Built-in exporters are not added to it.
func (b *Builder) WithCustomRegistry(registry *output.Registry) *Builder {
	b.registry = registry
	b.builtins = false
	return b
}

// Build constructs the Manager. External plugins that cannot be registered
// are logged and skipped; their errors are returned joined.
func (b *Builder) Build() (*Manager, error) {
	m := &Manager{
		registry:     b.registry,
		logger:       b.logger,
		executorOpts: b.executorOpts,
		external:     make(map[string]*ExternalPlugin),
	}

	if b.builtins {
		m.registerBuiltinPlugins()
	}

	var errs []error
	for _, name := range slices.Sorted(maps.Keys(b.config.External)) {
		if err := m.RegisterExternalPlugin(name, b.config.External[name]); err != nil {
			m.logger.Warn("skipping external plugin", "name", name, "error", err)
			errs = append(errs, err)
		}
	}

	return m, errors.Join(errs...)
}

// Manager owns the exporter registry.
type Manager struct {
	registry     *output.Registry
	logger       hclog.Logger
	executorOpts []executor.Option
	external     map[string]*ExternalPlugin
}

// registerBuiltinPlugins registers all built-in exporters.
func (m *Manager) registerBuiltinPlugins() {
	tw := tailwind.New()
	tw.Loader().WithLogger(m.logger.Named("template"))
	m.registry.Register(tw)

	css := cssvars.New()
	css.Loader().WithLogger(m.logger.Named("template"))
	m.registry.Register(css)

	js := jsontokens.New()
	js.Loader().WithLogger(m.logger.Named("template"))
	m.registry.Register(js)
}

// Registry returns the exporter registry.
func (m *Manager) Registry() *output.Registry {
	return m.registry
}

// Get retrieves an exporter by name.
func (m *Manager) Get(name string) (output.Plugin, bool) {
	return m.registry.Get(name)
}

// List returns all exporter names in sorted order.
func (m *Manager) List() []string {
	return m.registry.List()
}

// IsExternal reports whether name is an external plugin.
func (m *Manager) IsExternal(name string) bool {
	_, ok := m.external[name]
	return ok
}

// Resolve returns the exporter for a format name.
func (m *Manager) Resolve(name string) (output.Plugin, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if p, ok := m.registry.Get(name); ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownFormat, name, strings.Join(m.List(), ", "))
}

// Close releases resources held by external plugins.
func (m *Manager) Close() {
	for _, p := range m.external {
		p.Close()
	}
}

// RegisterExternalPlugin registers an external exporter. The plugin is only
// started when it is first used. An external plugin may replace a built-in
// of the same name.
func (m *Manager) RegisterExternalPlugin(name, path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("plugin path must be absolute: %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("plugin not found or not accessible: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("plugin path is a directory, not a file: %s", path)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("plugin is not executable: %s", path)
	}

	if _, ok := m.registry.Get(name); ok {
		m.logger.Info("external plugin replaces existing exporter", "name", name)
	}

	opts := append(slices.Clone(m.executorOpts), executor.WithLogger(m.logger.Named(name)))
	p := NewExternalPlugin(name, path, opts...)
	m.external[name] = p
	m.registry.Register(p)
	m.logger.Debug("registered external plugin", "name", name, "path", path)
	return nil
}

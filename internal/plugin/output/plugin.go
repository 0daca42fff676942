// Package output provides the interface and registry for token exporters.
package output

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/tokens"
)

// Plugin turns a token set into one or more output files.
type Plugin interface {
	// Name returns the format name used to select the plugin (e.g. "tailwind").
	Name() string

	// Description returns a human-readable description of the plugin.
	Description() string

	// Generate renders the token set. Returns map of filename -> content.
	Generate(set *tokens.Set) (map[string][]byte, error)

	// RegisterFlags registers plugin-specific flags with cobra command.
	RegisterFlags(cmd *cobra.Command)

	// Validate checks if the plugin configuration is valid.
	Validate() error

	// DefaultOutputDir returns the default output directory for this plugin.
	DefaultOutputDir() string
}

// DefaultOutputDir is where exporters write unless told otherwise.
const DefaultOutputDir = "tokens"

// ErrNilSet is returned by exporters given no token set.
var ErrNilSet = fmt.Errorf("token set cannot be nil")

// Registry holds all registered output plugins.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry, replacing any plugin of the same name.
func (r *Registry) Register(plugin Plugin) {
	r.plugins[plugin.Name()] = plugin
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	plugin, ok := r.plugins[name]
	return plugin, ok
}

// List returns all registered plugin names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns a copy of the registered plugins.
func (r *Registry) All() map[string]Plugin {
	plugins := make(map[string]Plugin, len(r.plugins))
	for name, plugin := range r.plugins {
		plugins[name] = plugin
	}
	return plugins
}

package manager

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/plugin/executor"
	"github.com/jmylchreest/tonal/internal/plugin/output"
	"github.com/jmylchreest/tonal/internal/tokens"
	"github.com/jmylchreest/tonal/pkg/plugin"
)

// ExternalPlugin wraps an external executable as an output plugin.
type ExternalPlugin struct {
	name      string
	path      string
	outputDir string
	args      map[string]string
	dryRun    bool
	opts      []executor.Option
	exec      *executor.PluginExecutor
}

// NewExternalPlugin creates a new external plugin wrapper.
func NewExternalPlugin(name, path string, opts ...executor.Option) *ExternalPlugin {
	return &ExternalPlugin{
		name: name,
		path: path,
		opts: opts,
	}
}

// Name returns the plugin's name.
func (p *ExternalPlugin) Name() string {
	return p.name
}

// Path returns the plugin executable.
func (p *ExternalPlugin) Path() string {
	return p.path
}

// Description returns the description reported by the plugin once it has
// been started, or its path before that.
func (p *ExternalPlugin) Description() string {
	if p.exec != nil && p.exec.Info().Description != "" {
		return p.exec.Info().Description
	}
	return "External exporter (" + p.path + ")"
}

// SetArgs sets custom arguments passed to the plugin.
func (p *ExternalPlugin) SetArgs(args map[string]string) {
	p.args = args
}

// SetDryRun tells the plugin it must not touch anything outside its output.
func (p *ExternalPlugin) SetDryRun(dryRun bool) {
	p.dryRun = dryRun
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *ExternalPlugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, p.name+".output-dir", "", "Output directory (default: "+output.DefaultOutputDir+")")
	cmd.Flags().StringToStringVar(&p.args, p.name+".arg", nil, "Argument passed to the "+p.name+" plugin (key=value)")
}

// Validate checks the plugin executable is still present.
func (p *ExternalPlugin) Validate() error {
	if _, err := os.Stat(p.path); err != nil {
		return fmt.Errorf("plugin %s: %w", p.name, err)
	}
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *ExternalPlugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}
	return output.DefaultOutputDir
}

// Generate runs the plugin without a caller deadline.
func (p *ExternalPlugin) Generate(set *tokens.Set) (map[string][]byte, error) {
	return p.GenerateContext(context.Background(), set)
}

// GenerateContext starts the plugin if needed and runs it against set.
func (p *ExternalPlugin) GenerateContext(ctx context.Context, set *tokens.Set) (map[string][]byte, error) {
	if set == nil {
		return nil, output.ErrNilSet
	}
	if len(set.Scale) == 0 {
		return nil, tokens.ErrEmptyScale
	}

	if p.exec == nil {
		e, err := executor.New(ctx, p.path, p.opts...)
		if err != nil {
			return nil, fmt.Errorf("plugin %s: %w", p.name, err)
		}
		p.exec = e
	}

	data := NewTokenData(set)
	data.DryRun = p.dryRun
	if len(p.args) > 0 {
		data.PluginArgs = make(map[string]any, len(p.args))
		for k, v := range p.args {
			data.PluginArgs[k] = v
		}
	}

	files, err := p.exec.Execute(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", p.name, err)
	}
	return files, nil
}

// Close stops the plugin process if one is running.
func (p *ExternalPlugin) Close() {
	if p.exec != nil {
		p.exec.Close()
	}
}

// NewTokenData converts a token set to the plugin wire format.
func NewTokenData(set *tokens.Set) plugin.TokenData {
	data := plugin.TokenData{
		Colors: make([]plugin.TokenColor, 0, len(set.Scale)),
		Typography: plugin.TokenTypeScale{
			FontFamily: set.FontFamily(),
			BaseSize:   set.Typography.BaseSize,
			Ratio:      set.Typography.Ratio,
			Scale:      make([]plugin.TokenSize, 0, len(set.Typography.Scale)),
		},
	}
	for _, c := range set.Colors() {
		data.Colors = append(data.Colors, plugin.TokenColor{Label: c.Label, Hex: c.Hex})
	}
	for _, s := range set.Typography.Scale {
		data.Typography.Scale = append(data.Typography.Scale, plugin.TokenSize{Label: s.Label, PX: s.PX, Rem: s.Rem})
	}
	return data
}

// Package tailwind exports tokens as a Tailwind CSS theme extension.
package tailwind

import (
	"embed"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/plugin/output"
	"github.com/jmylchreest/tonal/internal/plugin/output/common"
	tmplloader "github.com/jmylchreest/tonal/internal/plugin/output/template"
	"github.com/jmylchreest/tonal/internal/tokens"
)

//go:embed *.tmpl
var templates embed.FS

const (
	// FileName is the generated config file.
	FileName     = "tokens.tailwind.ts"
	templateName = FileName + ".tmpl"

	defaultLineHeight = 1.2
)

// Plugin implements output.Plugin for Tailwind CSS.
type Plugin struct {
	outputDir  string
	lineHeight float64
	loader     *tmplloader.Loader
}

// New creates a new Tailwind output plugin.
func New() *Plugin {
	return &Plugin{
		lineHeight: defaultLineHeight,
		loader:     tmplloader.New("tailwind", templates),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "tailwind"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Tailwind CSS theme extension (" + FileName + ")"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "tailwind.output-dir", "", "Output directory (default: "+output.DefaultOutputDir+")")
	cmd.Flags().Float64Var(&p.lineHeight, "tailwind.line-height", defaultLineHeight, "Line height applied to every font size")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.lineHeight <= 0 {
		return fmt.Errorf("invalid line height: %v (must be positive)", p.lineHeight)
	}
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}
	return output.DefaultOutputDir
}

// Loader returns the plugin's template loader.
func (p *Plugin) Loader() *tmplloader.Loader {
	return p.loader
}

type templateData struct {
	*tokens.Set
	LineHeight string
}

// Generate renders the Tailwind theme extension.
func (p *Plugin) Generate(set *tokens.Set) (map[string][]byte, error) {
	if set == nil {
		return nil, output.ErrNilSet
	}
	if len(set.Scale) == 0 {
		return nil, tokens.ErrEmptyScale
	}

	content, err := common.Render(p.loader, templateName, templateData{
		Set:        set,
		LineHeight: strconv.FormatFloat(p.lineHeight, 'f', -1, 64),
	})
	if err != nil {
		return nil, err
	}

	return map[string][]byte{FileName: content}, nil
}

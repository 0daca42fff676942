// Package cssvars exports tokens as CSS custom properties.
package cssvars

import (
	"embed"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/plugin/output"
	"github.com/jmylchreest/tonal/internal/plugin/output/common"
	tmplloader "github.com/jmylchreest/tonal/internal/plugin/output/template"
	"github.com/jmylchreest/tonal/internal/tokens"
)

//go:embed *.tmpl
var templates embed.FS

const (
	// FileName is the generated stylesheet.
	FileName     = "tokens.css"
	templateName = FileName + ".tmpl"

	defaultSelector = ":root"
)

// Plugin implements output.Plugin for CSS variables.
type Plugin struct {
	outputDir string
	selector  string
	loader    *tmplloader.Loader
}

// New creates a new CSS variables output plugin.
func New() *Plugin {
	return &Plugin{
		selector: defaultSelector,
		loader:   tmplloader.New("css", templates),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "css"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "CSS custom properties (" + FileName + ")"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "css.output-dir", "", "Output directory (default: "+output.DefaultOutputDir+")")
	cmd.Flags().StringVar(&p.selector, "css.selector", defaultSelector, "Selector the variables are declared on")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if strings.TrimSpace(p.selector) == "" {
		return fmt.Errorf("selector cannot be empty")
	}
	if strings.ContainsAny(p.selector, "{}") {
		return fmt.Errorf("invalid selector %q", p.selector)
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
	Selector string
}

// Generate renders the stylesheet.
func (p *Plugin) Generate(set *tokens.Set) (map[string][]byte, error) {
	if set == nil {
		return nil, output.ErrNilSet
	}
	if len(set.Scale) == 0 {
		return nil, tokens.ErrEmptyScale
	}

	content, err := common.Render(p.loader, templateName, templateData{Set: set, Selector: p.selector})
	if err != nil {
		return nil, err
	}
	return map[string][]byte{FileName: content}, nil
}

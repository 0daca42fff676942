// Package jsontokens exports tokens as a JSON document.
package jsontokens

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/plugin/output"
	"github.com/jmylchreest/tonal/internal/plugin/output/common"
	tmplloader "github.com/jmylchreest/tonal/internal/plugin/output/template"
	"github.com/jmylchreest/tonal/internal/tokens"
)

//go:embed *.tmpl
var templates embed.FS

const (
	// FileName is the generated document.
	FileName     = "tokens.json"
	templateName = FileName + ".tmpl"
)

// Plugin implements output.Plugin for JSON tokens. A template is used
// rather than encoding/json so keys keep scale order.
type Plugin struct {
	outputDir string
	loader    *tmplloader.Loader
}

// New creates a new JSON output plugin.
func New() *Plugin {
	return &Plugin{
		loader: tmplloader.New("json", templates),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "json"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "JSON design tokens (" + FileName + ")"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "json.output-dir", "", "Output directory (default: "+output.DefaultOutputDir+")")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
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

// Generate renders the JSON document. The result is checked to be valid
// JSON so a broken custom template fails here rather than downstream.
func (p *Plugin) Generate(set *tokens.Set) (map[string][]byte, error) {
	if set == nil {
		return nil, output.ErrNilSet
	}
	if len(set.Scale) == 0 {
		return nil, tokens.ErrEmptyScale
	}

	content, err := common.Render(p.loader, templateName, set)
	if err != nil {
		return nil, err
	}
	if !json.Valid(content) {
		return nil, fmt.Errorf("template %s produced invalid JSON", templateName)
	}
	return map[string][]byte{FileName: content}, nil
}

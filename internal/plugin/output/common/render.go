package common

import (
	"bytes"
	"fmt"
	"text/template"

	tmplloader "github.com/jmylchreest/tonal/internal/plugin/output/template"
)

// Render loads filename through loader, parses it with TemplateFuncs and
// executes it against data.
func Render(loader *tmplloader.Loader, filename string, data any) ([]byte, error) {
	content, _, err := loader.Load(filename)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(filename).Funcs(TemplateFuncs()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", filename, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", filename, err)
	}
	return buf.Bytes(), nil
}

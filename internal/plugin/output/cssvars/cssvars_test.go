package cssvars

import (
	"testing"

	outputtesting "github.com/jmylchreest/tonal/internal/plugin/output/testing"
)

func TestCSSPlugin(t *testing.T) {
	outputtesting.IsolateTemplates(t)
	outputtesting.RunAllTests(t, New(), outputtesting.TestConfig{
		ExpectedName:  "css",
		ExpectedFiles: []string{FileName},
	})
}

func TestCSSPlugin_Validate(t *testing.T) {
	tests := []struct {
		selector string
		wantErr  bool
	}{
		{selector: ":root"},
		{selector: "[data-theme=\"brand\"]"},
		{selector: "  ", wantErr: true},
		{selector: "a { color: red }", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			outputtesting.IsolateTemplates(t)
			plugin := New()
			plugin.selector = tt.selector
			if err := plugin.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCSSPlugin_Generate(t *testing.T) {
	outputtesting.IsolateTemplates(t)

	plugin := New()
	files, err := plugin.Generate(outputtesting.CreateSmallSet())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := `:root {
  --color-brand-50: #F6EDFF;
  --color-brand-100: #EADDFF;
  --font-size-xs: 0.64rem;
  --font-size-2xl: 1.9531rem;
  --font-family-sans: "Space Grotesk", system-ui, sans-serif;
}
`
	if got := string(files[FileName]); got != want {
		t.Errorf("Generate() =\n%s\nwant\n%s", got, want)
	}

	plugin.selector = ".brand"
	files, err = plugin.Generate(outputtesting.CreateSmallSet())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got := string(files[FileName][:8]); got != ".brand {" {
		t.Errorf("selector not applied, output starts %q", got)
	}
}

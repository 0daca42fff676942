package main

import (
	"context"
	"strings"
	"testing"

	"github.com/jmylchreest/tonal/pkg/plugin"
)

func sampleData() plugin.TokenData {
	return plugin.TokenData{
		Colors: []plugin.TokenColor{
			{Label: "50", Hex: "#f6edff"},
			{Label: "500", Hex: "#6750a4"},
		},
		Typography: plugin.TokenTypeScale{
			FontFamily: "Inter Tight",
			BaseSize:   16,
			Ratio:      1.25,
			Scale: []plugin.TokenSize{
				{Label: "base", PX: 16, Rem: "1rem"},
				{Label: "2xl", PX: 31.25, Rem: "1.953rem"},
			},
		},
	}
}

func TestGenerate(t *testing.T) {
	files, err := (&ScssPlugin{}).Generate(context.Background(), sampleData())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	out := string(files[OutputFile])

	for _, want := range []string{
		"$tonal-color-50: #f6edff;",
		"$tonal-color-500: #6750a4;",
		`  "500": $tonal-color-500,`,
		`$tonal-font-family: "Inter Tight", sans-serif;`,
		"$tonal-font-size-2xl: 1.953rem;",
		`  "2xl": $tonal-font-size-2xl,`,
		"  base: $tonal-font-size-base,",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateArgs(t *testing.T) {
	data := sampleData()
	data.PluginArgs = map[string]any{"prefix": "brand", "maps": "false"}

	files, err := (&ScssPlugin{}).Generate(context.Background(), data)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	out := string(files[OutputFile])

	if !strings.Contains(out, "$brand-color-500: #6750a4;") {
		t.Errorf("prefix not applied:\n%s", out)
	}
	if strings.Contains(out, "$brand-colors:") {
		t.Errorf("maps written with maps=false:\n%s", out)
	}
}

func TestGenerateInvalidArgs(t *testing.T) {
	for _, args := range []map[string]any{
		{"prefix": "1bad"},
		{"prefix": "a b"},
		{"maps": "sometimes"},
	} {
		data := sampleData()
		data.PluginArgs = args
		if _, err := (&ScssPlugin{}).Generate(context.Background(), data); err == nil {
			t.Errorf("Generate(%v) succeeded, want error", args)
		}
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (&ScssPlugin{}).Generate(ctx, sampleData()); err == nil {
		t.Error("Generate() with cancelled context succeeded")
	}
}

func TestMetadata(t *testing.T) {
	info := (&ScssPlugin{}).GetMetadata()
	if info.Name != Name || info.PluginProtocol != string(plugin.PluginTypeGoPlugin) {
		t.Errorf("GetMetadata() = %+v", info)
	}
}

package manager

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/tonal/internal/colour"
	"github.com/jmylchreest/tonal/internal/plugin/executor"
	"github.com/jmylchreest/tonal/internal/plugin/output"
	"github.com/jmylchreest/tonal/internal/tokens"
	"github.com/jmylchreest/tonal/internal/typography"
	"github.com/jmylchreest/tonal/pkg/plugin"
)

// writePlugin creates an executable file; its contents are never run by
// tests that use a mock runner.
func writePlugin(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	return path
}

func testSet(t *testing.T) *tokens.Set {
	t.Helper()
	set, err := tokens.NewSet(colour.GenerateScale("#6750A4", colour.DefaultScaleOptions()), typography.Default())
	require.NoError(t, err)
	return set
}

func TestBuild_Builtins(t *testing.T) {
	m, err := NewBuilder().Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"css", "json", "tailwind"}, m.List())
	for _, name := range m.List() {
		assert.False(t, m.IsExternal(name), name)
	}
}

func TestBuild_CustomRegistry(t *testing.T) {
	m, err := NewBuilder().WithCustomRegistry(output.NewRegistry()).Build()
	require.NoError(t, err)
	assert.Empty(t, m.List())
}

func TestBuild_ExternalPlugins(t *testing.T) {
	scss := writePlugin(t, "tonal-scss")

	m, err := NewBuilder().WithConfig(Config{External: map[string]string{
		"scss":    scss,
		"missing": "/nonexistent/tonal-missing",
		"rel":     "relative/plugin",
	}}).Build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "plugin not found")
	assert.Contains(t, err.Error(), "must be absolute")
	assert.Equal(t, []string{"css", "json", "scss", "tailwind"}, m.List())
	assert.True(t, m.IsExternal("scss"))
	assert.False(t, m.IsExternal("missing"))
}

func TestResolve(t *testing.T) {
	m, err := NewBuilder().Build()
	require.NoError(t, err)

	p, err := m.Resolve(" Tailwind ")
	require.NoError(t, err)
	assert.Equal(t, "tailwind", p.Name())

	_, err = m.Resolve("scss")
	require.ErrorIs(t, err, ErrUnknownFormat)
	assert.Contains(t, err.Error(), "css, json, tailwind")
}

func TestRegisterExternalPlugin_Rejects(t *testing.T) {
	m, err := NewBuilder().Build()
	require.NoError(t, err)

	notExec := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(notExec, []byte("x"), 0o644))

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "relative", path: "plugins/scss", want: "must be absolute"},
		{name: "missing", path: "/nonexistent/scss", want: "not found"},
		{name: "directory", path: t.TempDir(), want: "is a directory"},
		{name: "not executable", path: notExec, want: "not executable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.RegisterExternalPlugin("scss", tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	assert.NotContains(t, m.List(), "scss")
}

func TestRegisterExternalPlugin_ReplacesBuiltin(t *testing.T) {
	m, err := NewBuilder().Build()
	require.NoError(t, err)

	require.NoError(t, m.RegisterExternalPlugin("css", writePlugin(t, "tonal-css")))

	p, err := m.Resolve("css")
	require.NoError(t, err)
	assert.IsType(t, &ExternalPlugin{}, p)
}

func TestExternalPlugin_Generate(t *testing.T) {
	var received plugin.TokenData
	runner := &executor.MockProcessRunner{
		RunFunc: func(_ context.Context, _ string, args []string, stdin io.Reader) ([]byte, []byte, error) {
			if slices.Contains(args, plugin.InfoFlag) {
				return []byte(`{"name":"scss","description":"SCSS variables","plugin_protocol":"json-stdio"}`), nil, nil
			}
			if err := json.NewDecoder(stdin).Decode(&received); err != nil {
				return nil, nil, err
			}
			return []byte(`{"files":{"_tokens.scss":"$brand-500: #6750A4;\n"}}`), nil, nil
		},
	}

	m, err := NewBuilder().
		WithExecutorOptions(executor.WithRunner(runner)).
		WithConfig(Config{External: map[string]string{"scss": writePlugin(t, "tonal-scss")}}).
		Build()
	require.NoError(t, err)
	defer m.Close()

	p, err := m.Resolve("scss")
	require.NoError(t, err)
	ext := p.(*ExternalPlugin)
	assert.Contains(t, ext.Description(), "External exporter")

	cmd := &cobra.Command{Use: "export"}
	ext.RegisterFlags(cmd)
	require.NoError(t, cmd.Flags().Set("scss.arg", "prefix=brand"))
	ext.SetDryRun(true)

	files, err := ext.Generate(testSet(t))
	require.NoError(t, err)
	assert.Equal(t, "$brand-500: #6750A4;\n", string(files["_tokens.scss"]))
	assert.Equal(t, "SCSS variables", ext.Description())

	assert.Len(t, received.Colors, colour.ScaleSize)
	assert.Equal(t, "Inter", received.Typography.FontFamily)
	assert.Equal(t, map[string]any{"prefix": "brand"}, received.PluginArgs)
	assert.True(t, received.DryRun)
	assert.Equal(t, 2, runner.CallCount)

	_, err = ext.Generate(testSet(t))
	require.NoError(t, err)
	assert.Equal(t, 3, runner.CallCount, "detection should run once")
}

func TestExternalPlugin_GenerateErrors(t *testing.T) {
	p := NewExternalPlugin("scss", "/nonexistent/scss", executor.WithRunner(executor.NewErrorMockProcessRunner("exec failed")))

	_, err := p.Generate(nil)
	assert.ErrorIs(t, err, output.ErrNilSet)

	_, err = p.Generate(&tokens.Set{})
	assert.ErrorIs(t, err, tokens.ErrEmptyScale)

	_, err = p.Generate(testSet(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plugin scss")

	assert.Error(t, p.Validate())
	assert.Equal(t, output.DefaultOutputDir, p.DefaultOutputDir())
}

func TestExternalPlugin_Timeout(t *testing.T) {
	runner := executor.NewTimeoutMockProcessRunner()
	p := NewExternalPlugin("slow", "/opt/slow", executor.WithRunner(runner))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.GenerateContext(ctx, testSet(t))
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestNewTokenData(t *testing.T) {
	set := &tokens.Set{
		Scale: []colour.ColorStep{{ID: 0, Label: "50", Hex: "#f6edff"}},
		Typography: typography.Typography{
			Font:     "",
			BaseSize: 16,
			Ratio:    1.25,
			Scale:    []typography.TypeScaleStep{{ID: "base", PX: 16, Rem: "1rem", Label: "base"}},
		},
	}

	data := NewTokenData(set)
	assert.Equal(t, []plugin.TokenColor{{Label: "50", Hex: "#F6EDFF"}}, data.Colors)
	assert.Equal(t, typography.DefaultFont, data.Typography.FontFamily)
	assert.Equal(t, []plugin.TokenSize{{Label: "base", PX: 16, Rem: "1rem"}}, data.Typography.Scale)
	assert.Nil(t, data.PluginArgs)
}

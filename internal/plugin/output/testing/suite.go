// Package testing provides shared test utilities for output plugins.
package testing

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/colour"
	"github.com/jmylchreest/tonal/internal/plugin/output"
	"github.com/jmylchreest/tonal/internal/tokens"
	"github.com/jmylchreest/tonal/internal/typography"
)

// TestConfig holds configuration for running plugin tests.
type TestConfig struct {
	ExpectedName  string   // Plugin name
	ExpectedFiles []string // Files that Generate() should return
}

// RunAllTests runs all standard tests for a plugin. Callers should construct
// p after IsolateTemplates so overrides are looked up in the empty directory.
func RunAllTests(t *testing.T, p output.Plugin, config TestConfig) {
	t.Helper()
	TestBasicInterface(t, p, config.ExpectedName)
	TestGeneration(t, p, config.ExpectedFiles)
	TestFlags(t, p, config.ExpectedName)
}

// IsolateTemplates points template overrides at an empty directory so a
// developer's own overrides cannot leak into tests. Loaders resolve the
// directory when created.
func IsolateTemplates(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

// TestBasicInterface tests the basic plugin interface methods that all plugins must implement.
func TestBasicInterface(t *testing.T, p output.Plugin, expectedName string) {
	t.Run("Name", func(t *testing.T) {
		if p.Name() != expectedName {
			t.Errorf("Name() = %s, want %s", p.Name(), expectedName)
		}
	})

	t.Run("Description", func(t *testing.T) {
		if p.Description() == "" {
			t.Error("Description() should not be empty")
		}
	})

	t.Run("DefaultOutputDir", func(t *testing.T) {
		if dir := p.DefaultOutputDir(); dir != output.DefaultOutputDir {
			t.Errorf("DefaultOutputDir() = %s, want %s", dir, output.DefaultOutputDir)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})
}

// TestGeneration tests the Generate method with a full scale, a nil set and
// an empty scale.
func TestGeneration(t *testing.T, p output.Plugin, expectedFiles []string) {
	t.Run("Generate", func(t *testing.T) {
		files, err := p.Generate(CreateTestSet())
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		if len(files) != len(expectedFiles) {
			t.Fatalf("Generate() returned %d files, want %d", len(files), len(expectedFiles))
		}

		for _, expectedFile := range expectedFiles {
			content, ok := files[expectedFile]
			if !ok {
				t.Errorf("Generate() did not return %s", expectedFile)
				continue
			}
			assertScaleOrder(t, string(content))
		}
	})

	t.Run("GenerateNilSet", func(t *testing.T) {
		if _, err := p.Generate(nil); !errors.Is(err, output.ErrNilSet) {
			t.Errorf("Generate(nil) error = %v, want ErrNilSet", err)
		}
	})

	t.Run("GenerateEmptyScale", func(t *testing.T) {
		if _, err := p.Generate(&tokens.Set{}); !errors.Is(err, tokens.ErrEmptyScale) {
			t.Errorf("Generate() with empty scale error = %v, want ErrEmptyScale", err)
		}
	})
}

// assertScaleOrder checks every scale hex appears uppercase and in step order.
func assertScaleOrder(t *testing.T, content string) {
	t.Helper()
	pos := -1
	for _, c := range CreateTestSet().Colors() {
		idx := strings.Index(content, c.Hex)
		if idx < 0 {
			t.Errorf("output is missing %s (%s)", c.Label, c.Hex)
			continue
		}
		if idx < pos {
			t.Errorf("step %s is out of order", c.Label)
		}
		pos = idx
	}
}

// TestFlags tests plugin-specific flag registration.
func TestFlags(t *testing.T, p output.Plugin, expectedFlagPrefix string) {
	t.Run("RegisterFlags", func(t *testing.T) {
		cmd := &cobra.Command{
			Use: "test",
		}

		p.RegisterFlags(cmd)

		expectedFlag := expectedFlagPrefix + ".output-dir"
		if cmd.Flags().Lookup(expectedFlag) == nil {
			t.Errorf("RegisterFlags() did not register %s flag", expectedFlag)
		}
	})
}

// CreateTestSet returns the default violet scale with default typography.
func CreateTestSet() *tokens.Set {
	set, err := tokens.NewSet(
		colour.GenerateScale("#6750A4", colour.DefaultScaleOptions()),
		typography.Default(),
	)
	if err != nil {
		panic(err)
	}
	return set
}

// CreateSmallSet returns a two step set with a two step type scale, for
// exact output comparisons.
func CreateSmallSet() *tokens.Set {
	return &tokens.Set{
		Scale: []colour.ColorStep{
			{ID: 0, Label: "50", Hex: "#f6edff"},
			{ID: 1, Label: "100", Hex: "#eaddff"},
		},
		Typography: typography.Typography{
			Font:     "Space Grotesk",
			BaseSize: 16,
			Ratio:    1.25,
			Scale: []typography.TypeScaleStep{
				{ID: "xs", PX: 10.24, Rem: "0.64rem", Label: "xs"},
				{ID: "2xl", PX: 31.25, Rem: "1.9531rem", Label: "2xl"},
			},
		},
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/plugin/output"
	tmplloader "github.com/jmylchreest/tonal/internal/plugin/output/template"
	"github.com/jmylchreest/tonal/internal/security"
	"github.com/jmylchreest/tonal/internal/tokens"
)

var (
	exportFormats       []string
	exportOutputDir     string
	exportDryRun        bool
	exportDumpTemplates bool
	exportForce         bool
	exportList          bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the scale and type scale as design tokens",
	Long: `Export the current colour scale and type scale as design tokens.

Built-in formats are tailwind (tokens.tailwind.ts), css (tokens.css) and json
(tokens.json). External exporters configured under "plugins" in the project
file or in TONAL_PLUGINS are available by name.

Built-in formats render text templates. --dump-templates copies them to
~/.config/tonal/templates/<format>/ where edits override the embedded copy.

Examples:
  tonal export
  tonal export --format css,json --output-dir src/styles
  tonal export -f tailwind --tailwind.line-height 1.4 --dry-run
  tonal export --format css --css.selector '[data-theme="brand"]'
  tonal export --format tailwind --dump-templates
  tonal export --list`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringSliceVarP(&exportFormats, "format", "f", []string{"tailwind"}, "export formats")
	exportCmd.Flags().StringVarP(&exportOutputDir, "output-dir", "o", "", "write every format to this directory (default: each format's own)")
	exportCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "print files instead of writing them")
	exportCmd.Flags().BoolVar(&exportDumpTemplates, "dump-templates", false, "copy the formats' templates for editing instead of exporting")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "overwrite existing templates with --dump-templates")
	exportCmd.Flags().BoolVar(&exportList, "list", false, "list the available formats")

	rootCmd.AddCommand(exportCmd)
}

// templatedExporter is implemented by exporters that render templates.
type templatedExporter interface {
	Loader() *tmplloader.Loader
}

// contextExporter is implemented by exporters that run external processes.
type contextExporter interface {
	GenerateContext(ctx context.Context, set *tokens.Set) (map[string][]byte, error)
}

// dryRunner is implemented by exporters told about dry runs.
type dryRunner interface {
	SetDryRun(dryRun bool)
}

func runExport(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	if exportList {
		listFormats(w)
		return nil
	}

	plugins, err := resolveFormats(exportFormats)
	if err != nil {
		return err
	}

	if exportDumpTemplates {
		return dumpTemplates(w, plugins, exportForce)
	}

	sess, err := openSession(projectConfig)
	if err != nil {
		return err
	}
	set, err := sess.store.TokenSet()
	if err != nil {
		return err
	}

	for _, p := range plugins {
		dir := exportOutputDir
		if dir == "" {
			dir = p.DefaultOutputDir()
		}
		files, err := generate(cmd.Context(), p, set, exportDryRun)
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name(), err)
		}
		if exportDryRun {
			printFiles(w, dir, files)
			continue
		}
		written, err := writeFiles(dir, files)
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name(), err)
		}
		for _, path := range written {
			logger.Info("wrote tokens", "format", p.Name(), "path", path)
		}
	}
	return nil
}

// resolveFormats looks up and validates the exporters for the given names,
// dropping duplicates.
func resolveFormats(names []string) ([]output.Plugin, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no export format given")
	}
	var plugins []output.Plugin
	seen := map[string]bool{}
	for _, name := range names {
		p, err := sharedManager.Resolve(name)
		if err != nil {
			return nil, err
		}
		if seen[p.Name()] {
			continue
		}
		seen[p.Name()] = true
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name(), err)
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}

// generate runs one exporter, passing ctx to exporters that can use it.
func generate(ctx context.Context, p output.Plugin, set *tokens.Set, dryRun bool) (map[string][]byte, error) {
	if d, ok := p.(dryRunner); ok {
		d.SetDryRun(dryRun)
	}
	if c, ok := p.(contextExporter); ok {
		if ctx == nil {
			ctx = context.Background()
		}
		return c.GenerateContext(ctx, set)
	}
	return p.Generate(set)
}

// writeFiles writes files under dir. Names are checked before anything is
// written so a bad name from an external exporter leaves dir untouched.
func writeFiles(dir string, files map[string][]byte) ([]string, error) {
	names := slices.Sorted(maps.Keys(files))
	for _, name := range names {
		if err := security.ValidateFilePath(name, dir); err != nil {
			return nil, err
		}
	}

	written := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, fmt.Errorf("failed to create directory: %w", err)
		}
		if err := os.WriteFile(path, files[name], 0o644); err != nil {
			return written, fmt.Errorf("failed to write file: %w", err)
		}
		written = append(written, path)
	}
	return written, nil
}

// printFiles prints what writeFiles would write.
func printFiles(w io.Writer, dir string, files map[string][]byte) {
	for _, name := range slices.Sorted(maps.Keys(files)) {
		fmt.Fprintf(w, "==> %s <==\n", filepath.Join(dir, name))
		content := files[name]
		fmt.Fprintf(w, "%s", content)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			fmt.Fprintln(w)
		}
	}
}

// dumpTemplates copies the embedded templates of templated exporters.
func dumpTemplates(w io.Writer, plugins []output.Plugin, force bool) error {
	var errs []error
	for _, p := range plugins {
		t, ok := p.(templatedExporter)
		if !ok {
			logger.Warn("format has no templates", "format", p.Name())
			continue
		}
		dumped, err := t.Loader().DumpAll(force)
		for _, path := range dumped {
			fmt.Fprintf(w, "%s: %s\n", p.Name(), path)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func listFormats(w io.Writer) {
	table := NewTable([]string{"Format", "Type", "Output", "Description"})
	table.SetColumnMaxWidth(3, 60)
	for _, name := range sharedManager.List() {
		p, _ := sharedManager.Get(name)
		kind := "built-in"
		if sharedManager.IsExternal(name) {
			kind = "external"
		}
		table.AddRow([]string{name, kind, p.DefaultOutputDir(), strings.TrimSpace(p.Description())})
	}
	fmt.Fprint(w, table.Render())
}

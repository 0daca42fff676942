package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/tonal/internal/colour"
	"github.com/jmylchreest/tonal/internal/config"
	"github.com/jmylchreest/tonal/internal/palettes"
	"github.com/jmylchreest/tonal/internal/store"
	"github.com/jmylchreest/tonal/internal/tokens"
)

// isolate points state at a temporary directory and clears environment
// overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvStateDir, dir)
	t.Setenv(config.EnvSeed, "")
	t.Setenv(config.EnvTheme, "")
	t.Setenv(config.EnvPlugins, "")
	return dir
}

// resetFlags restores every flag in the command tree to its default so
// commands can be executed repeatedly within one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		switch v := f.Value.(type) {
		case pflag.SliceValue:
			var vals []string
			if def := strings.Trim(f.DefValue, "[]"); def != "" {
				vals = strings.Split(def, ",")
			}
			_ = v.Replace(vals)
		default:
			if f.Value.Type() != "stringToString" {
				_ = f.Value.Set(f.DefValue)
			}
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	gradientVars = map[string]string{}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("tonal %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func decodeScale(t *testing.T, out string) scaleOutput {
	t.Helper()
	var got scaleOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("scale output is not JSON: %v\n%s", err, out)
	}
	return got
}

func TestScaleCommand(t *testing.T) {
	dir := isolate(t)

	got := decodeScale(t, mustRun(t, "scale", "#6750A4", "--json"))

	if got.Seed != "#6750A4" {
		t.Errorf("seed = %q, want #6750A4", got.Seed)
	}
	if got.Template != palettes.CustomID {
		t.Errorf("template = %q, want %q", got.Template, palettes.CustomID)
	}
	if len(got.Scale) != colour.ScaleSize {
		t.Fatalf("got %d steps, want %d", len(got.Scale), colour.ScaleSize)
	}
	want := colour.GenerateScale("#6750A4", colour.ScaleOptions{ChromaScale: palettes.Default().ChromaScale})
	for i, step := range got.Scale {
		if step.Hex != want[i].Hex {
			t.Errorf("step %d = %s, want %s", i, step.Hex, want[i].Hex)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, store.StateFileName)); err != nil {
		t.Errorf("state was not saved: %v", err)
	}
}

func TestScaleCommand_Table(t *testing.T) {
	isolate(t)

	out := mustRun(t, "scale", "#6750A4", "--lock", "500")

	for _, want := range []string{"Seed #6750A4", "On white", "locked", "900"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestScaleCommand_NoSave(t *testing.T) {
	dir := isolate(t)

	mustRun(t, "scale", "#6750A4", "--no-save")

	if _, err := os.Stat(filepath.Join(dir, store.StateFileName)); !os.IsNotExist(err) {
		t.Errorf("state file should not exist, stat error: %v", err)
	}
}

func TestScaleCommand_InvalidInput(t *testing.T) {
	isolate(t)

	if _, err := runCLI(t, "scale", "not-a-colour"); err == nil {
		t.Error("expected error for invalid seed")
	}
	if _, err := runCLI(t, "scale", "--lock", "950"); err == nil {
		t.Error("expected error for unknown step")
	}
	if _, err := runCLI(t, "scale", "--chroma-scale", "-1"); err == nil {
		t.Error("expected error for negative chroma scale")
	}
}

func TestLockSurvivesSeedChange(t *testing.T) {
	isolate(t)

	first := decodeScale(t, mustRun(t, "scale", "#6750A4", "--json"))
	mustRun(t, "lock", "500")
	second := decodeScale(t, mustRun(t, "scale", "#10B981", "--json"))

	if second.Scale[5].Hex != first.Scale[5].Hex {
		t.Errorf("locked step changed: %s -> %s", first.Scale[5].Hex, second.Scale[5].Hex)
	}
	if second.Scale[4].Hex == first.Scale[4].Hex {
		t.Errorf("unlocked step should have been regenerated")
	}
	if len(second.Locks) != 1 || second.Locks[0] != 5 {
		t.Errorf("locks = %v, want [5]", second.Locks)
	}

	out := mustRun(t, "lock", "5")
	if !strings.Contains(out, "unlocked") {
		t.Errorf("second lock should unlock, got %q", out)
	}
}

func TestSetStepWithLock(t *testing.T) {
	isolate(t)

	mustRun(t, "set-step", "700", "rgb(18 52 86)")
	mustRun(t, "lock", "700")
	got := decodeScale(t, mustRun(t, "scale", "#FF0000", "--json"))

	if got.Scale[7].Hex != "#123456" {
		t.Errorf("override lost: step 700 = %s", got.Scale[7].Hex)
	}

	if _, err := runCLI(t, "set-step", "700", "nope"); err == nil {
		t.Error("expected error for invalid colour")
	}
}

func TestContrastCommand(t *testing.T) {
	isolate(t)

	out := mustRun(t, "contrast", "#000000", "#FFFFFF", "--json")

	var got contrastOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Ratio != 21 || !got.AAA || !got.AA {
		t.Errorf("got %+v, want ratio 21 passing AAA", got)
	}

	// The pair is remembered.
	out = mustRun(t, "contrast")
	if !strings.Contains(out, "21.00:1") {
		t.Errorf("saved pair not used:\n%s", out)
	}
}

func TestContrastCommand_StepLabels(t *testing.T) {
	isolate(t)

	out := mustRun(t, "contrast", "900", "50", "--json")

	var got contrastOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	scale := palettes.Default().Generate()
	want := colour.EvaluateContrast(scale[9].Hex, scale[0].Hex)
	if got.Foreground != scale[9].Hex || got.Background != scale[0].Hex {
		t.Errorf("pair = %s on %s, want %s on %s", got.Foreground, got.Background, scale[9].Hex, scale[0].Hex)
	}
	if got.ContrastResult != want {
		t.Errorf("result = %+v, want %+v", got.ContrastResult, want)
	}

	if _, err := runCLI(t, "contrast", "banana", "50"); err == nil {
		t.Error("expected error for unknown colour")
	}
}

func TestGradientCommand(t *testing.T) {
	isolate(t)

	out := mustRun(t, "gradient", "brandSoft", "--foreground", "#000000", "--samples", "2", "--json")

	var got []gradientResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}

	def, _ := tokens.FindGradient("brandSoft")
	want := colour.EvaluateGradientContrast(def, "#000000", 2, tokens.DefaultTheme().Resolver(tokens.ModeLight, nil))
	if got[0].GradientReport != want {
		t.Errorf("report = %+v, want %+v", got[0].GradientReport, want)
	}
	if got[0].CSS != colour.ToCSSGradient(def) {
		t.Errorf("css = %q", got[0].CSS)
	}
}

func TestGradientCommand_Vars(t *testing.T) {
	isolate(t)

	out := mustRun(t, "gradient", "brandSoft", "-f", "#000000",
		"--var", "color-brand-40=#FFFFFF", "--var", "--color-brand-50=#FFFFFF", "--json")

	var got []gradientResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got[0].Min != 21 || got[0].Max != 21 {
		t.Errorf("overridden stops not used: %+v", got[0].GradientReport)
	}
}

func TestGradientCommand_All(t *testing.T) {
	isolate(t)

	out := mustRun(t, "gradient")
	for _, g := range tokens.Gradients() {
		if !strings.Contains(out, g.Name) {
			t.Errorf("output missing %s:\n%s", g.Name, out)
		}
	}

	if _, err := runCLI(t, "gradient", "missing"); err == nil {
		t.Error("expected error for unknown gradient")
	}
	if _, err := runCLI(t, "gradient", "--samples", "1"); err == nil {
		t.Error("expected error for too few samples")
	}
}

func TestExportCommand(t *testing.T) {
	isolate(t)
	outDir := t.TempDir()

	mustRun(t, "export", "--format", "css,json", "--output-dir", outDir)

	css, err := os.ReadFile(filepath.Join(outDir, "tokens.css"))
	if err != nil {
		t.Fatalf("tokens.css not written: %v", err)
	}
	if !strings.Contains(string(css), "--color-brand-50:") {
		t.Errorf("unexpected css:\n%s", css)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "tokens.json"))
	if err != nil {
		t.Fatalf("tokens.json not written: %v", err)
	}
	if !json.Valid(data) {
		t.Errorf("tokens.json is not valid JSON")
	}
}

func TestExportCommand_DryRun(t *testing.T) {
	isolate(t)
	outDir := filepath.Join(t.TempDir(), "out")

	out := mustRun(t, "export", "-f", "tailwind", "-o", outDir, "--dry-run")

	if !strings.Contains(out, "==> "+filepath.Join(outDir, "tokens.tailwind.ts")+" <==") {
		t.Errorf("missing file header:\n%s", out)
	}
	if !strings.Contains(out, "satisfies Config") {
		t.Errorf("missing file content:\n%s", out)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Errorf("dry run created %s", outDir)
	}
}

func TestExportCommand_UnknownFormat(t *testing.T) {
	isolate(t)

	_, err := runCLI(t, "export", "--format", "sass")
	if err == nil || !strings.Contains(err.Error(), "available") {
		t.Errorf("expected unknown format error listing formats, got %v", err)
	}
}

func TestExportCommand_List(t *testing.T) {
	isolate(t)

	out := mustRun(t, "export", "--list")
	for _, name := range []string{"css", "json", "tailwind"} {
		if !strings.Contains(out, name) {
			t.Errorf("list missing %s:\n%s", name, out)
		}
	}
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()

	written, err := writeFiles(dir, map[string][]byte{
		"tokens.css":       []byte("a"),
		"nested/extra.txt": []byte("b"),
	})
	if err != nil {
		t.Fatalf("writeFiles: %v", err)
	}
	if len(written) != 2 {
		t.Errorf("wrote %d files, want 2", len(written))
	}
	if data, _ := os.ReadFile(filepath.Join(dir, "nested", "extra.txt")); string(data) != "b" {
		t.Errorf("nested file content = %q", data)
	}
}

func TestWriteFiles_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()

	_, err := writeFiles(dir, map[string][]byte{
		"a.css":       []byte("ok"),
		"../evil.txt": []byte("no"),
	})
	if err == nil {
		t.Fatal("expected traversal error")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "a.css")); !os.IsNotExist(statErr) {
		t.Error("no file should be written when a name is rejected")
	}
}

func TestTypescaleCommand(t *testing.T) {
	isolate(t)

	out := mustRun(t, "typescale", "--base", "18", "--ratio", "1.5", "--json")

	var got struct {
		Font     string  `json:"font"`
		BaseSize float64 `json:"baseSize"`
		Ratio    float64 `json:"ratio"`
		Scale    []struct {
			ID string  `json:"id"`
			PX float64 `json:"px"`
		} `json:"scale"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.BaseSize != 18 || got.Ratio != 1.5 {
		t.Errorf("got base %g ratio %g", got.BaseSize, got.Ratio)
	}
	if got.Scale[2].ID != "base" || got.Scale[2].PX != 18 || got.Scale[3].PX != 27 {
		t.Errorf("unexpected scale: %+v", got.Scale)
	}

	if _, err := runCLI(t, "typescale", "--ratio", "1"); err == nil {
		t.Error("expected error for ratio 1")
	}
}

func TestTemplatesCommands(t *testing.T) {
	isolate(t)

	out := mustRun(t, "templates")
	for _, id := range palettes.IDs() {
		if !strings.Contains(out, id) {
			t.Errorf("list missing %s", id)
		}
	}

	mustRun(t, "templates", "apply", "deep-ocean")
	got := decodeScale(t, mustRun(t, "scale", "--json"))
	if got.Template != "deep-ocean" {
		t.Errorf("template = %q, want deep-ocean", got.Template)
	}

	if _, err := runCLI(t, "templates", "apply", "nope"); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestProjectCommands(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "brand.json")

	mustRun(t, "scale", "#FF705D")
	mustRun(t, "project", "save", "brand")
	mustRun(t, "project", "export", "brand", "-o", file)
	mustRun(t, "project", "remove", "brand")

	if out := mustRun(t, "project", "list"); !strings.Contains(out, "No saved projects") {
		t.Errorf("project not removed:\n%s", out)
	}

	mustRun(t, "scale", "#10B981")
	if out := mustRun(t, "project", "import", file, "--name", "restored"); !strings.Contains(out, `"restored"`) {
		t.Errorf("unexpected import output: %q", out)
	}

	got := decodeScale(t, mustRun(t, "scale", "--json"))
	if got.Seed != "#FF705D" {
		t.Errorf("import did not become current: seed %q", got.Seed)
	}
	if out := mustRun(t, "project", "list"); !strings.Contains(out, "restored") {
		t.Errorf("imported project missing from list:\n%s", out)
	}

	if _, err := runCLI(t, "project", "load", "missing"); err == nil {
		t.Error("expected error for missing project")
	}
}

func TestImportProject_Stdin(t *testing.T) {
	st := store.New()
	env := st.ExportCurrent("shared")
	data, err := json.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}

	name, err := importProject(st, bytes.NewReader(data), "-", "")
	if err != nil {
		t.Fatalf("importProject: %v", err)
	}
	if name != "shared" {
		t.Errorf("name = %q, want shared", name)
	}

	if _, err := importProject(st, strings.NewReader(`{"colorSeed": ""}`), "-", ""); err == nil {
		t.Error("expected validation error")
	}
}

func TestResetCommand(t *testing.T) {
	isolate(t)

	mustRun(t, "scale", "#FF0000")
	mustRun(t, "project", "save", "keep")
	mustRun(t, "reset")

	got := decodeScale(t, mustRun(t, "scale", "--json"))
	if got.Template != palettes.DefaultID {
		t.Errorf("template = %q after reset", got.Template)
	}
	if out := mustRun(t, "project", "list"); !strings.Contains(out, "keep") {
		t.Error("reset should keep projects")
	}
}

func TestVersionCommand(t *testing.T) {
	isolate(t)

	if out := mustRun(t, "version"); !strings.Contains(out, "tonal") {
		t.Errorf("unexpected version output: %q", out)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	cfg, err := loadProjectConfig("", dir)
	if err != nil {
		t.Fatalf("missing project file should not fail: %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("unexpected path %q", cfg.Path)
	}

	path := filepath.Join(dir, "tonal.yaml")
	if err := os.WriteFile(path, []byte("seed: \"#6750A4\"\nlocks: [2]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadProjectConfig("", dir)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if cfg.Seed != "#6750A4" || len(cfg.Locks) != 1 {
		t.Errorf("unexpected config: %+v", cfg)
	}

	t.Setenv(config.EnvSeed, "#10B981")
	cfg, err = loadProjectConfig(path, "")
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if cfg.Seed != "#10B981" {
		t.Errorf("environment should override file seed, got %q", cfg.Seed)
	}

	if _, err := loadProjectConfig(filepath.Join(dir, "missing.yaml"), ""); err == nil {
		t.Error("explicit missing file should fail")
	}
}

func TestApplyConfig_Idempotent(t *testing.T) {
	hue := 20.0
	cfg := &config.Config{
		Seed:      "#3B82F6",
		HueShift:  &hue,
		Locks:     []int{3},
		Overrides: map[string]string{"300": "#ABCDEF"},
		Typography: &config.Typography{
			Font:     "Lora",
			BaseSize: 18,
		},
		Contrast: &config.Contrast{Foreground: "900", Background: "#FFFFFF"},
	}

	st := store.New()
	if err := applyConfig(st, cfg); err != nil {
		t.Fatalf("applyConfig: %v", err)
	}
	first := st.State()

	if first.ColorSeed != "#3B82F6" || first.HueShift != 20 {
		t.Errorf("params not applied: %+v", first)
	}
	if !first.Locks[3] {
		t.Error("lock not applied")
	}
	if first.Scale[3].Hex != "#abcdef" {
		t.Errorf("override not applied: %s", first.Scale[3].Hex)
	}
	if first.Typography.Font != "Lora" || first.Typography.BaseSize != 18 {
		t.Errorf("typography not applied: %+v", first.Typography)
	}
	if first.Contrast.Foreground != first.Scale[9].Hex || first.Contrast.Background != "#ffffff" {
		t.Errorf("contrast not applied: %+v", first.Contrast)
	}

	if err := applyConfig(st, cfg); err != nil {
		t.Fatalf("second applyConfig: %v", err)
	}
	second := st.State()
	if second.Scale[3] != first.Scale[3] || second.Locks[3] != first.Locks[3] || second.ColorSeed != first.ColorSeed {
		t.Error("applying the same config twice changed the state")
	}
}

func TestApplyConfig_Template(t *testing.T) {
	st := store.New()
	if err := applyConfig(st, &config.Config{Template: "deep-ocean"}); err != nil {
		t.Fatalf("applyConfig: %v", err)
	}
	if st.SelectedTemplateID() != "deep-ocean" {
		t.Errorf("template = %q", st.SelectedTemplateID())
	}

	// Parameters given alongside a template override the template's values.
	chroma := 0.5
	st = store.New()
	if err := applyConfig(st, &config.Config{Template: "deep-ocean", ChromaScale: &chroma}); err != nil {
		t.Fatalf("applyConfig: %v", err)
	}
	tmpl, _ := palettes.Get("deep-ocean")
	state := st.State()
	if state.ColorSeed != tmpl.ColorSeed || state.ChromaScale != 0.5 {
		t.Errorf("got seed %s chroma %g", state.ColorSeed, state.ChromaScale)
	}
}

func TestResolveColourRef(t *testing.T) {
	st := store.New()
	scale := st.Scale()

	tests := []struct {
		ref     string
		want    string
		wantErr bool
	}{
		{ref: "#FFFFFF", want: "#ffffff"},
		{ref: "red", want: "#ff0000"},
		{ref: "700", want: scale[7].Hex},
		{ref: "2", want: scale[2].Hex},
		{ref: "ffffff", wantErr: true},
		{ref: "950", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := resolveColourRef(st, tt.ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveColourRef(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveColourRef(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	if l := newLogger(&buf, false, false); !l.IsInfo() || l.IsDebug() {
		t.Error("default logger should log at info")
	}
	if l := newLogger(&buf, true, false); !l.IsDebug() {
		t.Error("verbose logger should log at debug")
	}
	if l := newLogger(&buf, true, true); l.IsWarn() || !l.IsError() {
		t.Error("quiet logger should only log errors")
	}
}

func TestNewSharedManagerReportsEnvErrors(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvPlugins, "missing-path")

	m, errs := newSharedManager()
	if len(errs) == 0 {
		t.Fatal("expected an error for a malformed TONAL_PLUGINS entry")
	}
	if !strings.Contains(errs[0].Error(), config.EnvPlugins) {
		t.Errorf("error should name %s: %v", config.EnvPlugins, errs[0])
	}
	if _, ok := m.Get("tailwind"); !ok {
		t.Error("built-in exporters should still be registered")
	}
}

func TestSetupLogsStartupErrors(t *testing.T) {
	isolate(t)
	t.Cleanup(func() { startupErrors = nil })
	startupErrors = []error{errors.New("plugins: boom")}

	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"--verbose", "version"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("tonal version: %v", err)
	}

	if !strings.Contains(errOut.String(), "plugins: boom") {
		t.Errorf("startup error not logged at debug: %q", errOut.String())
	}
	if startupErrors != nil {
		t.Error("startup errors should only be logged once")
	}
}

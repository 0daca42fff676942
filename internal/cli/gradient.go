package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/colour"
	"github.com/jmylchreest/tonal/internal/config"
	"github.com/jmylchreest/tonal/internal/store"
	"github.com/jmylchreest/tonal/internal/tokens"
)

// ScaleVarPrefix names the variables that expose the current scale to
// gradients, e.g. --color-scale-500.
const ScaleVarPrefix = "--color-scale-"

var (
	gradientForeground string
	gradientSamples    int
	gradientVars       map[string]string
	gradientJSON       bool
)

var gradientCmd = &cobra.Command{
	Use:   "gradient [name...]",
	Short: "Check text contrast across gradients",
	Long: `Estimate the contrast range of a foreground colour over gradients.

Each gradient is sampled between its first and last stop. Stops name CSS
variables, resolved from the built-in theme, the project file's variables,
--var flags and the current scale (--color-scale-50 ... --color-scale-900).
Without names every built-in and project gradient is checked.

Examples:
  tonal gradient
  tonal gradient brandSoft --foreground "#FFFFFF"
  tonal gradient hero --foreground 900 --samples 24
  tonal gradient brandSoft --var color-brand-40="#6750A4" --theme dark`,
	RunE: runGradient,
}

func init() {
	gradientCmd.Flags().StringVarP(&gradientForeground, "foreground", "f", "", "foreground colour or step (default: the saved contrast foreground)")
	gradientCmd.Flags().IntVar(&gradientSamples, "samples", 0, fmt.Sprintf("number of samples (default: project samples or %d)", colour.DefaultGradientSamples))
	gradientCmd.Flags().StringToStringVar(&gradientVars, "var", nil, "set a colour variable (name=colour, leading -- optional)")
	gradientCmd.Flags().BoolVar(&gradientJSON, "json", false, "print the results as JSON")

	rootCmd.AddCommand(gradientCmd)
}

type gradientResult struct {
	Name string `json:"name"`
	CSS  string `json:"css"`
	colour.GradientReport
}

func runGradient(cmd *cobra.Command, args []string) error {
	sess, err := openSession(projectConfig)
	if err != nil {
		return err
	}

	fg := sess.store.ContrastSelection().Foreground
	if gradientForeground != "" {
		if fg, err = resolveColourRef(sess.store, gradientForeground); err != nil {
			return err
		}
	}

	samples := gradientSamples
	if samples == 0 {
		samples = projectConfig.Samples
	}
	if samples == 0 {
		samples = colour.DefaultGradientSamples
	}
	if samples < 2 {
		return fmt.Errorf("samples must be at least 2, got %d", samples)
	}

	resolver, err := gradientResolver(sess.store, projectConfig, gradientVars)
	if err != nil {
		return err
	}

	defs := gradientDefinitions(projectConfig)
	names := args
	if len(names) == 0 {
		names = slices.Sorted(maps.Keys(defs))
	}

	results := make([]gradientResult, 0, len(names))
	for _, name := range names {
		def, ok := defs[name]
		if !ok {
			return fmt.Errorf("unknown gradient %q (available: %v)", name, slices.Sorted(maps.Keys(defs)))
		}
		results = append(results, gradientResult{
			Name:           name,
			CSS:            colour.ToCSSGradient(def),
			GradientReport: colour.EvaluateGradientContrast(def, fg, samples, resolver),
		})
	}

	w := cmd.OutOrStdout()
	if gradientJSON {
		return writeJSON(w, results)
	}
	renderGradients(w, fg, samples, results)
	return nil
}

// gradientDefinitions returns the built-in presets with project gradients
// layered on top.
func gradientDefinitions(cfg *config.Config) map[string]colour.GradientDef {
	defs := make(map[string]colour.GradientDef)
	for _, g := range tokens.Gradients() {
		defs[g.Name] = g.Def
	}
	maps.Copy(defs, cfg.Gradients)
	return defs
}

// gradientResolver layers, lowest first: theme variables, the current scale,
// project variables, and flag variables.
func gradientResolver(st *store.Store, cfg *config.Config, flagVars map[string]string) (colour.Resolver, error) {
	mode, err := tokens.ParseMode(cfg.Theme)
	if err != nil {
		return nil, err
	}

	extra := make(map[string]string)
	for _, step := range st.Scale() {
		extra[ScaleVarPrefix+step.Label] = step.Hex
	}
	maps.Copy(extra, cfg.Variables)
	for name, value := range flagVars {
		if _, ok := colour.ParseToOKLCH(value); !ok {
			return nil, fmt.Errorf("--var %s: %w: %q", name, store.ErrInvalidColour, value)
		}
		name = colour.VarName(name)
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		extra[name] = value
	}
	return tokens.DefaultTheme().Resolver(mode, extra), nil
}

func renderGradients(w io.Writer, fg string, samples int, results []gradientResult) {
	fmt.Fprintf(w, "Foreground %s, %d samples\n\n", fg, samples)

	table := NewTable([]string{"Gradient", "Min", "Avg", "Max", "AA", "CSS"})
	for _, col := range []int{1, 2, 3} {
		table.AlignRight(col)
	}
	table.SetColumnMaxWidth(5, 60)
	for _, r := range results {
		table.AddRow([]string{
			r.Name,
			formatFloat(r.Min, 2),
			formatFloat(r.Avg, 2),
			formatFloat(r.Max, 2),
			passFail(r.Min >= colour.ThresholdAA),
			r.CSS,
		})
	}
	fmt.Fprint(w, table.Render())
}

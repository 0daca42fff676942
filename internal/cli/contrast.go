package cli

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/colour"
	"github.com/jmylchreest/tonal/internal/store"
)

var contrastJSON bool

var contrastCmd = &cobra.Command{
	Use:   "contrast [foreground] [background]",
	Short: "Check WCAG contrast between two colours",
	Long: `Check the WCAG 2.x contrast ratio between a foreground and a background.

Either side may be a CSS colour or a scale step (id 0-9 or label 50-900).
Without arguments the saved contrast pair is checked. Given colours become the
saved pair.

Examples:
  tonal contrast
  tonal contrast 700 100
  tonal contrast "#FFFFFF" 500
  tonal contrast black "hsl(220 88% 56%)" --json`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(projectConfig)
		if err != nil {
			return err
		}

		fg, bg, err := selectContrastPair(sess.store, args)
		if err != nil {
			return err
		}
		if len(args) > 0 {
			if err := sess.save(); err != nil {
				return err
			}
		}

		result := colour.EvaluateContrast(fg, bg)
		w := cmd.OutOrStdout()
		if contrastJSON {
			return writeJSON(w, contrastOutput{Foreground: fg, Background: bg, ContrastResult: result})
		}
		renderContrast(w, fg, bg, result, isTerminal(w))
		return nil
	},
}

type contrastOutput struct {
	Foreground string `json:"foreground"`
	Background string `json:"background"`
	colour.ContrastResult
}

func init() {
	contrastCmd.Flags().BoolVar(&contrastJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(contrastCmd)
}

// selectContrastPair resolves the arguments and stores them as the contrast
// pair. Missing arguments keep the stored side.
func selectContrastPair(st *store.Store, args []string) (string, string, error) {
	resolved := make([]string, 2)
	for i, ref := range args {
		hex, err := resolveColourRef(st, ref)
		if err != nil {
			return "", "", err
		}
		resolved[i] = hex
	}
	st.SetContrastSelection(resolved[0], resolved[1])

	pair := st.ContrastSelection()
	return pair.Foreground, pair.Background, nil
}

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/store"
	"github.com/jmylchreest/tonal/internal/typography"
)

var (
	typeFont  string
	typeBase  float64
	typeRatio float64
	typeJSON  bool
	typeFonts bool
)

var typescaleCmd = &cobra.Command{
	Use:   "typescale",
	Short: "Show or change the type scale",
	Long: `Show the modular type scale, or change its font, base size or ratio.

Each step from xs to 6xl is the base size multiplied by the ratio raised to the
step's distance from base. Rem values assume a 16px root font size.

Examples:
  tonal typescale
  tonal typescale --base 18 --ratio 1.333
  tonal typescale --font "Space Grotesk"
  tonal typescale --fonts`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := cmd.OutOrStdout()
		if typeFonts {
			for _, f := range typography.FontPreviews() {
				fmt.Fprintln(w, f.Label)
			}
			return nil
		}

		sess, err := openSession(projectConfig)
		if err != nil {
			return err
		}

		var u store.TypographyUpdate
		changed := false
		if cmd.Flags().Changed("font") {
			if strings.TrimSpace(typeFont) == "" {
				return fmt.Errorf("font must not be empty")
			}
			u.Font, changed = &typeFont, true
		}
		if cmd.Flags().Changed("base") {
			if typeBase <= 0 {
				return fmt.Errorf("base size must be positive: %g", typeBase)
			}
			u.BaseSize, changed = &typeBase, true
		}
		if cmd.Flags().Changed("ratio") {
			if typeRatio <= 1 {
				return fmt.Errorf("ratio must be greater than 1: %g", typeRatio)
			}
			u.Ratio, changed = &typeRatio, true
		}
		if changed {
			sess.store.SetTypography(u)
			if err := sess.save(); err != nil {
				return err
			}
		}

		t := sess.store.Typography()
		if typeJSON {
			return writeJSON(w, t)
		}
		renderTypography(w, t)
		return nil
	},
}

func init() {
	typescaleCmd.Flags().StringVar(&typeFont, "font", "", "font family")
	typescaleCmd.Flags().Float64Var(&typeBase, "base", typography.DefaultBaseSize, "base font size in px")
	typescaleCmd.Flags().Float64Var(&typeRatio, "ratio", typography.DefaultRatio, "scale ratio")
	typescaleCmd.Flags().BoolVar(&typeJSON, "json", false, "print the type scale as JSON")
	typescaleCmd.Flags().BoolVar(&typeFonts, "fonts", false, "list suggested fonts")

	rootCmd.AddCommand(typescaleCmd)
}

func renderTypography(w io.Writer, t typography.Typography) {
	fmt.Fprintf(w, "%s, base %spx, ratio %s\n\n", t.Font, typography.FormatNumber(t.BaseSize), typography.FormatNumber(t.Ratio))

	table := NewTable([]string{"Step", "px", "rem"})
	table.AlignRight(1)
	table.AlignRight(2)
	for _, s := range t.Scale {
		table.AddRow([]string{s.Label, typography.FormatNumber(s.PX), s.Rem})
	}
	fmt.Fprint(w, table.Render())
}

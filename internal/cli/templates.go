package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/palettes"
)

var templatesJSON bool

var templatesCmd = &cobra.Command{
	Use:     "templates",
	Aliases: []string{"template"},
	Short:   "List the built-in palette templates",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sess, err := openSession(projectConfig)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if templatesJSON {
			return writeJSON(w, palettes.All())
		}
		renderTemplates(w, palettes.All(), sess.store.SelectedTemplateID(), isTerminal(w))
		return nil
	},
}

var templatesApplyCmd = &cobra.Command{
	Use:   "apply <id>",
	Short: "Switch to a palette template",
	Long: `Switch to a built-in palette template. Locks are cleared and the scale and
contrast pair are replaced with the template's.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(projectConfig)
		if err != nil {
			return err
		}
		if err := sess.store.ApplyTemplate(args[0]); err != nil {
			return fmt.Errorf("%w (available: %v)", err, palettes.IDs())
		}
		if err := sess.save(); err != nil {
			return err
		}
		return printScale(cmd.OutOrStdout(), sess.store, false)
	},
}

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "print the templates as JSON")
	templatesCmd.AddCommand(templatesApplyCmd)
	rootCmd.AddCommand(templatesCmd)
}

func renderTemplates(w io.Writer, templates []palettes.PaletteTemplate, selected string, swatches bool) {
	headers := []string{"", "ID", "Name", "Seed", "Description"}
	if swatches {
		headers = append(headers, "Preview")
	}
	table := NewTable(headers)
	table.SetColumnMaxWidth(4, 48)
	for _, t := range templates {
		mark := ""
		if t.ID == selected {
			mark = "*"
		}
		row := []string{mark, t.ID, t.Name, t.ColorSeed, t.Description}
		if swatches {
			preview := ""
			for _, step := range t.Generate() {
				preview += swatch(step.Hex, "  ")
			}
			row = append(row, preview)
		}
		table.AddRow(row)
	}
	fmt.Fprint(w, table.Render())
}

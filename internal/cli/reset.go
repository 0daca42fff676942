package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default template and typography",
	Long:  `Restore the default palette template, typography and contrast pair. Saved projects are kept.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sess, err := openSession(projectConfig)
		if err != nil {
			return err
		}
		sess.store.Reset()
		if err := sess.save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset state in %s\n", sess.path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/colour"
)

var lockCmd = &cobra.Command{
	Use:   "lock <step>",
	Short: "Toggle the lock on a step",
	Long: `Toggle the lock on a step. Locked steps keep their colour when the seed or
tuning parameters change. A step is named by its id (0-9) or label (50-900).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseStepRef(args[0])
		if err != nil {
			return err
		}
		sess, err := openSession(projectConfig)
		if err != nil {
			return err
		}
		locked, err := sess.store.ToggleLock(id)
		if err != nil {
			return err
		}
		if err := sess.save(); err != nil {
			return err
		}

		step, _ := colour.FindStep(sess.store.Scale(), id)
		state := "unlocked"
		if locked {
			state = "locked"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Step %s (%s) %s\n", step.Label, step.Hex, state)
		return nil
	},
}

var setStepCmd = &cobra.Command{
	Use:   "set-step <step> <colour>",
	Short: "Override a single step with a colour",
	Long: `Override a single step with an explicit colour. The project is marked custom.
The override is replaced on the next regeneration unless the step is locked.

Examples:
  tonal set-step 500 "#6750A4"
  tonal set-step 7 "oklch(0.45 0.12 290)"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseStepRef(args[0])
		if err != nil {
			return err
		}
		sess, err := openSession(projectConfig)
		if err != nil {
			return err
		}
		if err := sess.store.SetStepHex(id, args[1]); err != nil {
			return err
		}
		if err := sess.save(); err != nil {
			return err
		}

		step, _ := colour.FindStep(sess.store.Scale(), id)
		fmt.Fprintf(cmd.OutOrStdout(), "Step %s set to %s\n", step.Label, step.Hex)
		if !sess.store.Locks()[id] {
			logger.Info("step is not locked; the override is lost when the scale is regenerated", "step", step.Label)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lockCmd)
	rootCmd.AddCommand(setStepCmd)
}

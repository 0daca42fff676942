package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/colour"
	"github.com/jmylchreest/tonal/internal/store"
)

var (
	scaleHueShift      float64
	scaleChromaScale   float64
	scaleLightnessBias float64
	scaleLocks         []string
	scaleTemplate      string
	scaleJSON          bool
)

var scaleCmd = &cobra.Command{
	Use:   "scale [seed]",
	Short: "Generate and show the colour ramp",
	Long: `Generate the ten-step colour ramp from a seed colour and print it.

The seed may be any CSS colour: hex (#6750A4, #f00), rgb(), hsl(), hwb(),
oklab(), oklch() or a named colour. Steps that are locked keep their current
colour. Values not given on the command line come from the project file or
the saved state.

Examples:
  tonal scale "#6750A4"
  tonal scale "hsl(150 60% 40%)" --hue-shift 15 --chroma-scale 0.8
  tonal scale --lock 500 --lock 700 "#FF705D"
  tonal scale --template deep-ocean
  tonal scale --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScale,
}

func init() {
	scaleCmd.Flags().Float64Var(&scaleHueShift, "hue-shift", 0, "rotate the seed hue by degrees")
	scaleCmd.Flags().Float64Var(&scaleChromaScale, "chroma-scale", 1, "multiply the seed chroma")
	scaleCmd.Flags().Float64Var(&scaleLightnessBias, "lightness-bias", 0, "add to every step's lightness")
	scaleCmd.Flags().StringSliceVar(&scaleLocks, "lock", nil, "lock a step (id or label) before regenerating")
	scaleCmd.Flags().StringVar(&scaleTemplate, "template", "", "start from a built-in palette template")
	scaleCmd.Flags().BoolVar(&scaleJSON, "json", false, "print the scale as JSON")

	rootCmd.AddCommand(scaleCmd)
}

// scaleOptions carries the command line values that were actually given.
type scaleOptions struct {
	seed          string
	template      string
	hueShift      *float64
	chromaScale   *float64
	lightnessBias *float64
	locks         []string
}

func runScale(cmd *cobra.Command, args []string) error {
	sess, err := openSession(projectConfig)
	if err != nil {
		return err
	}

	opts := scaleOptions{template: scaleTemplate, locks: scaleLocks}
	if len(args) == 1 {
		opts.seed = args[0]
	}
	if cmd.Flags().Changed("hue-shift") {
		opts.hueShift = &scaleHueShift
	}
	if cmd.Flags().Changed("chroma-scale") {
		opts.chromaScale = &scaleChromaScale
	}
	if cmd.Flags().Changed("lightness-bias") {
		opts.lightnessBias = &scaleLightnessBias
	}

	if err := updateScale(sess.store, opts); err != nil {
		return err
	}
	if err := sess.save(); err != nil {
		return err
	}

	return printScale(cmd.OutOrStdout(), sess.store, scaleJSON)
}

// updateScale applies command line changes to the store.
func updateScale(st *store.Store, opts scaleOptions) error {
	if opts.template != "" {
		if err := st.ApplyTemplate(opts.template); err != nil {
			return err
		}
	}

	locks := st.Locks()
	for _, ref := range opts.locks {
		id, err := parseStepRef(ref)
		if err != nil {
			return err
		}
		if locks[id] {
			continue
		}
		if _, err := st.ToggleLock(id); err != nil {
			return err
		}
		locks[id] = true
	}

	if opts.seed != "" {
		if _, ok := colour.ParseToOKLCH(opts.seed); !ok {
			return fmt.Errorf("%w: %q", store.ErrInvalidColour, opts.seed)
		}
		st.SetSeed(opts.seed)
	}
	if opts.hueShift != nil {
		st.SetHueShift(*opts.hueShift)
	}
	if opts.chromaScale != nil {
		if *opts.chromaScale < 0 {
			return fmt.Errorf("chroma scale must not be negative: %g", *opts.chromaScale)
		}
		st.SetChromaScale(*opts.chromaScale)
	}
	if opts.lightnessBias != nil {
		st.SetLightnessBias(*opts.lightnessBias)
	}
	return nil
}

type scaleOutput struct {
	Seed          string             `json:"seed"`
	HueShift      float64            `json:"hueShift"`
	ChromaScale   float64            `json:"chromaScale"`
	LightnessBias float64            `json:"lightnessBias"`
	Template      string             `json:"template"`
	Locks         []int              `json:"locks"`
	Scale         []colour.ColorStep `json:"scale"`
}

// printScale writes the current scale as JSON or as a table.
func printScale(w io.Writer, st *store.Store, asJSON bool) error {
	state := st.State()
	if asJSON {
		locks := make([]int, 0, len(state.Locks))
		for _, step := range state.Scale {
			if state.Locks[step.ID] {
				locks = append(locks, step.ID)
			}
		}
		return writeJSON(w, scaleOutput{
			Seed:          state.ColorSeed,
			HueShift:      state.HueShift,
			ChromaScale:   state.ChromaScale,
			LightnessBias: state.LightnessBias,
			Template:      state.SelectedTemplateID,
			Locks:         locks,
			Scale:         state.Scale,
		})
	}

	fmt.Fprintf(w, "Seed %s  hue %+g°  chroma ×%g  lightness %+g  template %s\n\n",
		state.ColorSeed, state.HueShift, state.ChromaScale, state.LightnessBias, state.SelectedTemplateID)
	renderScale(w, state.Scale, state.Locks, isTerminal(w))
	return nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jmylchreest/tonal/internal/colour"
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// swatch renders a block of colour hex. Text drawn on it uses whichever of
// black or white contrasts more.
func swatch(hex, text string) string {
	fg := colour.BlackHex
	if colour.ContrastRatio(colour.WhiteHex, hex) > colour.ContrastRatio(colour.BlackHex, hex) {
		fg = colour.WhiteHex
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(fg)).
		Render(text)
}

// renderScale prints the scale as a table. Swatches are added when
// swatches is set.
func renderScale(w io.Writer, steps []colour.ColorStep, locks colour.LockSet, swatches bool) {
	headers := []string{"ID", "Step", "Hex", "L", "C", "H", "On white", "On black", "Lock"}
	if swatches {
		headers = append([]string{""}, headers...)
	}
	table := NewTable(headers)
	offset := len(headers) - 9
	for _, col := range []int{0, 3, 4, 5, 6, 7} {
		table.AlignRight(col + offset)
	}

	for _, step := range steps {
		lock := ""
		if locks[step.ID] {
			lock = "locked"
		}
		row := []string{
			strconv.Itoa(step.ID),
			step.Label,
			strings.ToUpper(step.Hex),
			formatFloat(step.OKLCH.L, 3),
			formatFloat(step.OKLCH.C, 3),
			formatFloat(step.OKLCH.H, 1),
			formatFloat(colour.ContrastRatio(step.Hex, colour.WhiteHex), 2),
			formatFloat(colour.ContrastRatio(step.Hex, colour.BlackHex), 2),
			lock,
		}
		if swatches {
			row = append([]string{swatch(step.Hex, "      ")}, row...)
		}
		table.AddRow(row)
	}
	fmt.Fprint(w, table.Render())
}

// renderContrast prints a contrast result with its WCAG levels.
func renderContrast(w io.Writer, fg, bg string, result colour.ContrastResult, swatches bool) {
	if swatches {
		sample := lipgloss.NewStyle().
			Foreground(lipgloss.Color(fg)).
			Background(lipgloss.Color(bg)).
			Padding(0, 2).
			Render("The quick brown fox")
		fmt.Fprintf(w, "%s\n\n", sample)
	}
	fmt.Fprintf(w, "Foreground: %s\nBackground: %s\nRatio:      %s:1\n\n", strings.ToUpper(fg), strings.ToUpper(bg), formatFloat(result.Ratio, 2))

	table := NewTable([]string{"Level", "Minimum", "Result"})
	table.AlignRight(1)
	levels := []struct {
		name string
		min  float64
		pass bool
	}{
		{"AA", colour.ThresholdAA, result.AA},
		{"AA large", colour.ThresholdAALarge, result.AALarge},
		{"AAA", colour.ThresholdAAA, result.AAA},
		{"AAA large", colour.ThresholdAAALarge, result.AAALarge},
	}
	for _, l := range levels {
		table.AddRow([]string{l.name, formatFloat(l.min, 1), passFail(l.pass)})
	}
	fmt.Fprint(w, table.Render())
}

func passFail(pass bool) string {
	if pass {
		return "pass"
	}
	return "fail"
}

func formatFloat(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

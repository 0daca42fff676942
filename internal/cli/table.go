package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a plain column formatter. Widths are measured in terminal cells so
// cells holding styled swatches line up with plain ones.
type Table struct {
	headers    []string
	rows       [][]string
	padding    int
	maxWidths  map[int]int // 0 = no limit
	rightAlign map[int]bool
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:    headers,
		rows:       make([][]string, 0),
		padding:    2,
		maxWidths:  make(map[int]int),
		rightAlign: make(map[int]bool),
	}
}

// SetColumnMaxWidth wraps text in column colIndex at maxWidth cells.
func (t *Table) SetColumnMaxWidth(colIndex int, maxWidth int) {
	t.maxWidths[colIndex] = maxWidth
}

// AlignRight right-aligns column colIndex, for numbers.
func (t *Table) AlignRight(colIndex int) {
	t.rightAlign[colIndex] = true
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	normalised := make([]string, len(t.headers))
	copy(normalised, row)
	t.rows = append(t.rows, normalised)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	cells := make([][][]string, len(t.rows))
	for r, row := range t.rows {
		cells[r] = make([][]string, len(row))
		for c, cell := range row {
			cells[r][c] = wrapText(cell, t.maxWidths[c])
		}
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for c, lines := range row {
			for _, line := range lines {
				widths[c] = max(widths[c], lipgloss.Width(line))
			}
		}
	}

	gap := strings.Repeat(" ", t.padding)
	var b strings.Builder
	writeLine := func(parts []string) {
		b.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
		b.WriteString("\n")
	}

	parts := make([]string, len(t.headers))
	for i, h := range t.headers {
		parts[i] = t.pad(i, h, widths[i])
	}
	writeLine(parts)

	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	writeLine(parts)

	for _, row := range cells {
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for line := range height {
			for c := range t.headers {
				text := ""
				if line < len(row[c]) {
					text = row[c][line]
				}
				parts[c] = t.pad(c, text, widths[c])
			}
			writeLine(parts)
		}
	}

	return b.String()
}

func (t *Table) pad(col int, s string, width int) string {
	if t.rightAlign[col] {
		return padLeft(s, width)
	}
	return padRight(s, width)
}

// padRight pads s with spaces to width cells. Longer strings are unchanged.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// wrapText wraps text at word boundaries to fit width. Words longer than
// width are split.
func wrapText(text string, width int) []string {
	if width <= 0 || len(text) <= width {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range words {
		if len(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			for len(word) > width {
				lines = append(lines, word[:width])
				word = word[width:]
			}
			current = word
			continue
		}

		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

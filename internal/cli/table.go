package cli

import (
	"strings"
)

// Table is a plain-text table formatter with dynamic column widths and
// optional per-column wrapping.
type Table struct {
	headers   []string
	rows      [][]string
	padding   int
	maxWidths []int
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:   headers,
		padding:   2,
		maxWidths: make([]int, len(headers)),
	}
}

// SetColumnMaxWidth caps a column's width. Cells longer than the cap are
// wrapped onto continuation lines.
func (t *Table) SetColumnMaxWidth(col, maxWidth int) {
	if col >= 0 && col < len(t.maxWidths) {
		t.maxWidths[col] = maxWidth
	}
}

// AddRow adds a row to the table. Short rows are padded to the header count,
// long rows are truncated.
func (t *Table) AddRow(row []string) {
	cells := make([]string, len(t.headers))
	copy(cells, row)
	t.rows = append(t.rows, cells)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	// Wrap cells that exceed their column cap.
	wrapped := make([][][]string, len(t.rows))
	for rowIdx, row := range t.rows {
		wrapped[rowIdx] = make([][]string, len(row))
		for colIdx, cell := range row {
			if limit := t.maxWidths[colIdx]; limit > 0 {
				wrapped[rowIdx][colIdx] = wrapText(cell, limit)
			} else {
				wrapped[rowIdx][colIdx] = []string{cell}
			}
		}
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range wrapped {
		for i, lines := range row {
			for _, line := range lines {
				if len(line) > widths[i] {
					widths[i] = len(line)
				}
			}
		}
	}

	gap := strings.Repeat(" ", t.padding)
	var out strings.Builder

	writeLine := func(cells []string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = padRight(c, widths[i])
		}
		out.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
		out.WriteString("\n")
	}

	writeLine(t.headers)

	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	writeLine(seps)

	for _, row := range wrapped {
		height := 1
		for _, lines := range row {
			if len(lines) > height {
				height = len(lines)
			}
		}
		for lineIdx := 0; lineIdx < height; lineIdx++ {
			cells := make([]string, len(t.headers))
			for colIdx := range t.headers {
				if lineIdx < len(row[colIdx]) {
					cells[colIdx] = row[colIdx][lineIdx]
				}
			}
			writeLine(cells)
		}
	}

	return out.String()
}

// padRight pads a string with spaces on the right to reach the desired width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// wrapText wraps text to fit within width, breaking at word boundaries and
// splitting words longer than a full line.
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
		for len(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			lines = append(lines, word[:width])
			word = word[width:]
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

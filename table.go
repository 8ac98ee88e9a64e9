package main

import (
	"fmt"
	"strings"
)

// consoleTable renders rows as a bordered text table. Column widths grow to
// fit the widest cell.
type consoleTable struct {
	headers []string
	widths  []int
	rows    [][]string
}

func newConsoleTable(headers ...string) *consoleTable {
	t := &consoleTable{headers: headers}
	for _, h := range headers {
		t.widths = append(t.widths, len(h))
	}
	return t
}

// AddRow appends one row. Missing cells render empty; extra cells are
// dropped.
func (t *consoleTable) AddRow(cells ...any) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i >= len(cells) {
			break
		}
		row[i] = fmt.Sprint(cells[i])
		t.widths[i] = max(t.widths[i], len(row[i]))
	}
	t.rows = append(t.rows, row)
}

func (t *consoleTable) String() string {
	var sb strings.Builder
	separator := t.separator()
	sb.WriteString(separator)
	sb.WriteString("\n")
	t.writeRow(&sb, t.headers)
	sb.WriteString(separator)
	sb.WriteString("\n")
	for _, row := range t.rows {
		t.writeRow(&sb, row)
	}
	sb.WriteString(separator)
	return sb.String()
}

func (t *consoleTable) separator() string {
	var parts []string
	for _, w := range t.widths {
		parts = append(parts, strings.Repeat("-", w+2))
	}
	return "+" + strings.Join(parts, "+") + "+"
}

func (t *consoleTable) writeRow(sb *strings.Builder, cells []string) {
	for i, w := range t.widths {
		fmt.Fprintf(sb, "| %-*s ", w, cells[i])
	}
	sb.WriteString("|\n")
}

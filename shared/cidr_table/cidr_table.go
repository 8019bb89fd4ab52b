// Package cidrtable renders CIDR report rows as terminal tables.
package cidrtable

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Render writes header and rows to w as a rounded table.
func Render(w io.Writer, header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(toRow(header))
	for _, r := range rows {
		t.AppendRow(toRow(r))
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

package ui

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// NewTable returns a rounded-style table writer mirrored to w.
func NewTable(w io.Writer, headers ...interface{}) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	if len(headers) > 0 {
		t.AppendHeader(table.Row(headers))
	}
	return t
}

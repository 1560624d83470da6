// Package format renders CLI command output. Commands produce JSON by
// default so scripts can pipe them; tables are for humans.
package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// Table is the human-readable shape of a command's output.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Write writes v in the requested format.
//
// Supported formats:
// - json (default)
// - table (requires the command to supply a table)
func Write(w io.Writer, v any, tbl *Table, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "table":
		if tbl == nil {
			return fmt.Errorf("this command has no table output; use --format json")
		}
		return WriteTable(w, *tbl)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
//
// NOTE: Output stays strict JSON only. Anything about how to fetch more
// data belongs in a `meta` object, not in loose trailing text.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteTable renders an aligned table with bold headers.
func WriteTable(w io.Writer, t Table) error {
	ut := uitable.New()
	ut.MaxColWidth = 60
	ut.Wrap = true

	bold := color.New(color.Bold)
	headers := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = bold.Sprint(h)
	}
	ut.AddRow(headers...)

	for _, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for i, c := range row {
			cells[i] = c
		}
		ut.AddRow(cells...)
	}

	_, err := fmt.Fprintln(w, ut.String())
	return err
}

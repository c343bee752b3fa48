// Package render writes tabular results in the selected output format.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// Target selects how a table is rendered.
type Target string

const (
	// TargetPretty is a boxed, styled table; the default on a terminal.
	TargetPretty Target = "pretty"
	// TargetPlain is an ASCII-only column layout; the default when stdout
	// is not a terminal.
	TargetPlain Target = "plain"
	TargetJSON  Target = "json"
	TargetYAML  Target = "yaml"
	TargetCSV   Target = "csv"
)

// Targets lists every accepted output format.
func Targets() []Target {
	return []Target{TargetPretty, TargetPlain, TargetJSON, TargetYAML, TargetCSV}
}

func ParseTarget(raw string) (Target, error) {
	for _, target := range Targets() {
		if raw == string(target) {
			return target, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (choose from %v)", raw, Targets())
}

// DefaultTarget picks pretty for interactive terminals and plain
// otherwise.
func DefaultTarget(stdout *os.File) Target {
	if isatty.IsTerminal(stdout.Fd()) {
		return TargetPretty
	}
	return TargetPlain
}

// Column pairs a display title with the key used in machine-readable
// dumps.
type Column struct {
	Title string
	Key   string
}

// Table is the renderer-agnostic result model. Rows are cell strings in
// column order.
type Table struct {
	Columns []Column
	Rows    [][]string
}

// Render writes the table to w in the given format.
func Render(w io.Writer, target Target, table Table) error {
	switch target {
	case TargetPretty:
		return renderPretty(w, table)
	case TargetPlain:
		return renderPlain(w, table)
	case TargetJSON:
		return renderJSON(w, table)
	case TargetYAML:
		return renderYAML(w, table)
	case TargetCSV:
		return renderCSV(w, table)
	default:
		return fmt.Errorf("unknown output format %q", target)
	}
}

func renderJSON(w io.Writer, table Table) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(table.records())
}

func renderYAML(w io.Writer, table Table) error {
	encoder := yaml.NewEncoder(w)
	if err := encoder.Encode(table.records()); err != nil {
		return err
	}
	return encoder.Close()
}

func renderCSV(w io.Writer, table Table) error {
	writer := csv.NewWriter(w)

	header := make([]string, len(table.Columns))
	for i, column := range table.Columns {
		header[i] = column.Key
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// records rebuilds the table as ordered key/value maps for the dump
// formats, so every format shows exactly the same cells.
func (t Table) records() []map[string]string {
	records := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make(map[string]string, len(t.Columns))
		for i, column := range t.Columns {
			if i < len(row) {
				record[column.Key] = row[i]
			}
		}
		records = append(records, record)
	}
	return records
}

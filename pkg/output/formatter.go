// Package output renders result structures in the formats the CLI
// exposes: json, yaml, csv, and an aligned text table.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format names a supported output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
	FormatTable Format = "table"
)

// Tabular is implemented by result types that can render themselves as
// rows. CSV and table output require it; json and yaml work on anything.
type Tabular interface {
	TableHeader() []string
	TableRows() [][]string
}

// Formatter renders a result value as bytes ready to print.
type Formatter interface {
	Format(v any) ([]byte, error)
}

// NewFormatter returns the formatter for a format name. An empty name
// selects json.
func NewFormatter(format string) (Formatter, error) {
	switch Format(strings.ToLower(format)) {
	case FormatJSON, "":
		return jsonFormatter{pretty: true}, nil
	case FormatYAML:
		return yamlFormatter{}, nil
	case FormatCSV:
		return csvFormatter{}, nil
	case FormatTable:
		return tableFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (expected json, yaml, csv, or table)", format)
	}
}

type jsonFormatter struct {
	pretty bool
}

func (f jsonFormatter) Format(v any) ([]byte, error) {
	if f.pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

type yamlFormatter struct{}

func (yamlFormatter) Format(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

type csvFormatter struct{}

func (csvFormatter) Format(v any) ([]byte, error) {
	tab, ok := v.(Tabular)
	if !ok {
		return nil, fmt.Errorf("%T cannot be rendered as csv", v)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(tab.TableHeader()); err != nil {
		return nil, err
	}
	if err := w.WriteAll(tab.TableRows()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type tableFormatter struct{}

func (tableFormatter) Format(v any) ([]byte, error) {
	tab, ok := v.(Tabular)
	if !ok {
		return nil, fmt.Errorf("%T cannot be rendered as a table", v)
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(tab.TableHeader(), "\t"))
	for _, row := range tab.TableRows() {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

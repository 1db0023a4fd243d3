package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// Renderer writes a set of tables to w. JSON output bypasses tables and
// encodes the report struct directly via WriteJSON.
type Renderer interface {
	Render(tables []Table, w io.Writer) error
}

func NewRenderer(f Format) Renderer {
	switch f {
	case FormatCSV:
		return &CSVRenderer{}
	case FormatMarkdown:
		return &MarkdownRenderer{}
	default:
		return &TextRenderer{}
	}
}

// WriteJSON encodes any report aggregate as indented JSON.
func WriteJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type TextRenderer struct{}

func (r *TextRenderer) Render(tables []Table, w io.Writer) error {
	for _, t := range tables {
		header := strings.ToUpper(strings.ReplaceAll(t.Name, "_", " "))
		_, _ = fmt.Fprintf(w, "\n=== %s ===\n", header)

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		if t.Name == "summary" && len(t.Rows) == 1 {
			// Single-row summaries read better unpivoted.
			for i, col := range t.Columns {
				_, _ = fmt.Fprintf(tw, "  %s:\t%s\n", col, t.Rows[0][i])
			}
		} else {
			_, _ = fmt.Fprintln(tw, "  "+strings.Join(t.Columns, "\t"))
			for _, row := range t.Rows {
				_, _ = fmt.Fprintln(tw, "  "+strings.Join(row, "\t"))
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintln(w)
	return nil
}

type CSVRenderer struct{}

func (r *CSVRenderer) Render(tables []Table, w io.Writer) error {
	for _, t := range tables {
		if _, err := fmt.Fprintf(w, "# %s\n", t.Name); err != nil {
			return err
		}
		cw := csv.NewWriter(w)
		if err := cw.Write(t.Columns); err != nil {
			return err
		}
		if err := cw.WriteAll(t.Rows); err != nil {
			return err
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(tables []Table, w io.Writer) error {
	for _, t := range tables {
		_, _ = fmt.Fprintf(w, "\n### %s\n\n", t.Name)
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(t.Columns, " | "))
		seps := make([]string, len(t.Columns))
		for i := range seps {
			seps[i] = "---"
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))
		for _, row := range t.Rows {
			escaped := make([]string, len(row))
			for i, cell := range row {
				escaped[i] = strings.ReplaceAll(cell, "|", "\\|")
			}
			_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(escaped, " | "))
		}
	}
	_, _ = fmt.Fprintln(w)
	return nil
}

package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts text, json or csv in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatCSV:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (text, json, csv)", s)
	}
}

// Write renders sections in the given format. CSV output separates
// sections with a blank line; JSON output with more than one section is an
// object keyed by Section.Key.
func Write(w io.Writer, f Format, sections ...Section) error {
	switch f {
	case FormatJSON:
		if len(sections) == 1 {
			return WriteJSON(w, sections[0].Value)
		}
		obj := make(map[string]any, len(sections))
		for _, s := range sections {
			obj[s.Key] = s.Value
		}
		return WriteJSON(w, obj)
	case FormatCSV:
		for i, s := range sections {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if err := writeCSV(w, s.Table); err != nil {
				return err
			}
		}
		return nil
	default:
		for i, s := range sections {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeText(w, s.Table)
		}
		return nil
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

func writeText(w io.Writer, t Table) {
	title := color.New(color.FgCyan, color.Bold)
	header := color.New(color.FgBlue, color.Bold)

	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = utf8.RuneCountInString(c)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && utf8.RuneCountInString(cell) > widths[i] {
				widths[i] = utf8.RuneCountInString(cell)
			}
		}
	}

	if t.Title != "" {
		title.Fprintf(w, "📊 %s\n", t.Title)
	}

	header.Fprintln(w, joinPadded(t.Columns, widths))
	dashes := make([]string, len(widths))
	for i, n := range widths {
		dashes[i] = strings.Repeat("-", n)
	}
	fmt.Fprintln(w, joinPadded(dashes, widths))

	for _, row := range t.Rows {
		fmt.Fprintln(w, joinPadded(row, widths))
	}

	if len(t.Rows) == 1 {
		fmt.Fprintln(w, "(1 row)")
	} else {
		fmt.Fprintf(w, "(%d rows)\n", len(t.Rows))
	}
}

func joinPadded(cells []string, widths []int) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(cell)
		if i < len(cells)-1 && i < len(widths) {
			b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		}
	}
	return b.String()
}

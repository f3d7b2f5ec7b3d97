package core

// format.go renders a single validated row for output.
//
// Supported formats:
//   - FormatJSON: one object, columns in file order
//   - FormatCSV: a quoted header line and one data line, CRLF terminated
//   - FormatNone: the Row value itself, for in-process callers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Format selects how FetchRow renders a row.
type Format string

const (
	FormatJSON Format = "JSON"
	FormatCSV  Format = "CSV"
	FormatNone Format = ""
)

// ParseFormat maps a selector to a Format. Matching is exact; anything other
// than "JSON" or "CSV" selects FormatNone.
func ParseFormat(s string) Format {
	switch Format(s) {
	case FormatJSON:
		return FormatJSON
	case FormatCSV:
		return FormatCSV
	default:
		return FormatNone
	}
}

// ErrRowOutOfRange is returned by FetchRow for an index outside the rows.
var ErrRowOutOfRange = errors.New("row index out of range")

// LineNumberNotice is shown in place of a row when the requested index does
// not name one.
const LineNumberNotice = "Invalid argument for line number."

// FetchRow renders rows[index] in the given format. JSON and CSV come back
// as a string; FormatNone returns the Row.
func FetchRow(rows []Row, index int, format Format) (any, error) {
	if index < 0 || index >= len(rows) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrRowOutOfRange, index, len(rows))
	}

	row := rows[index]
	switch format {
	case FormatJSON:
		return RenderJSON(row)
	case FormatCSV:
		return RenderCSV(row), nil
	default:
		return row, nil
	}
}

// RenderJSON encodes a row as a single JSON object.
func RenderJSON(row Row) (string, error) {
	b, err := json.Marshal(row)
	if err != nil {
		return "", fmt.Errorf("encode row: %w", err)
	}
	return string(b), nil
}

// RenderCSV encodes a row as a header line and a data line. Header names and
// text values are always quoted; numbers are written bare so a reader can
// tell them apart.
func RenderCSV(row Row) string {
	rec := row.Record()
	columns := rec.Columns()

	var b strings.Builder
	for i, name := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quoteCSV(name))
	}
	b.WriteString("\r\n")

	for i, name := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		v, _ := rec.Get(name)
		switch v := v.(type) {
		case string:
			b.WriteString(quoteCSV(v))
		default:
			b.WriteString(formatValue(v))
		}
	}
	b.WriteString("\r\n")
	return b.String()
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// TemplateCSV returns a blank data file: the schema header and no rows.
func TemplateCSV() string {
	names := make([]string, len(Schema))
	for i, spec := range Schema {
		names[i] = spec.Name
	}
	return strings.Join(names, ",") + "\r\n"
}

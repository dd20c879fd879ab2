package export

import (
	"strings"

	"github.com/refugiapp/refugiapp/models"
)

// MimeTypeCSV is the media type of the CSV artifact.
const MimeTypeCSV = "text/csv;charset=utf-8"

// Columns returns the union of field names across records in the order each
// name is first seen.
func Columns(records []models.Record) []string {
	seen := make(map[string]struct{})
	columns := make([]string, 0, 8)
	for _, rec := range records {
		for _, k := range rec.Keys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			columns = append(columns, k)
		}
	}
	return columns
}

// RecordsToCSV renders records as CSV text: a header line with [Columns]
// followed by one line per record, joined by "\n" without a trailing
// newline. Absent fields render as empty cells.
//
// ok is false when records is empty; there is nothing to export then.
func RecordsToCSV(records []models.Record) (csv string, ok bool) {
	if len(records) == 0 {
		return "", false
	}

	columns := Columns(records)

	var sb strings.Builder
	writeLine(&sb, columns, func(i int) string { return columns[i] })
	for _, rec := range records {
		sb.WriteByte('\n')
		writeLine(&sb, columns, func(i int) string {
			v, _ := rec.Get(columns[i])
			return v
		})
	}

	return sb.String(), true
}

func writeLine(sb *strings.Builder, columns []string, value func(i int) string) {
	for i := range columns {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(escapeField(value(i)))
	}
}

// escapeField quotes v when it holds a quote, comma or line feed. Inner
// quotes are doubled. Anything else is written verbatim.
func escapeField(v string) string {
	if !strings.ContainsAny(v, "\",\n") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

package ingest

import (
	"strings"

	importer "talentdesk/internal/importer/domain"
)

// readCSVTable parses CSV bytes with quote-aware comma splitting: a quote
// toggles an inside-quotes state, a comma separates fields only outside
// quotes, and surrounding quotes are stripped from each field afterwards.
// Rows are padded or truncated to the header's column count.
func readCSVTable(source string, data []byte) (*importer.Table, error) {
	lines := splitLines(string(data))
	if len(lines) == 0 {
		return nil, ErrEmptyFile
	}

	headers := splitCSVLine(lines[0].text)
	if len(headers) == 0 || allBlank(headers) {
		return nil, ErrEmptyHeader
	}

	table := &importer.Table{Source: source, Headers: headers}
	for _, line := range lines[1:] {
		fields := splitCSVLine(line.text)
		values := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(fields) {
				values[header] = fields[i]
			} else {
				values[header] = ""
			}
		}
		table.Rows = append(table.Rows, importer.RawRow{
			Index:   line.number,
			Headers: headers,
			Values:  values,
		})
	}
	return table, nil
}

type csvLine struct {
	number int
	text   string
}

// splitLines splits on \r\n, \n or \r and drops blank lines, keeping the
// original 1-based line numbers for error reporting.
func splitLines(text string) []csvLine {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var lines []csvLine
	for i, raw := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		lines = append(lines, csvLine{number: i + 1, text: raw})
	}
	return lines
}

func splitCSVLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ',' && !inQuotes:
			fields = append(fields, stripSurroundingQuotes(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, stripSurroundingQuotes(current.String()))
	return fields
}

// stripSurroundingQuotes removes one pair of enclosing quotes. Everything
// else, meaningful leading or trailing spaces included, is preserved;
// trimming is normalization's concern.
func stripSurroundingQuotes(field string) string {
	if len(field) >= 2 && strings.HasPrefix(field, `"`) && strings.HasSuffix(field, `"`) {
		return field[1 : len(field)-1]
	}
	return field
}

func allBlank(fields []string) bool {
	for _, field := range fields {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

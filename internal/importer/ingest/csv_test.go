package ingest

import (
	"errors"
	"strings"
	"testing"
)

func TestReadTableCSVQuotedComma(t *testing.T) {
	data := "Title,Talent,Date\nComic Con,\"Smith, John\",2025-01-01\n"
	table, err := ReadTable("events.csv", strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Headers) != 3 {
		t.Fatalf("expected 3 headers, got %v", table.Headers)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
	row := table.Rows[0]
	if got := row.Get("Talent"); got != "Smith, John" {
		t.Fatalf("quoted field = %q", got)
	}
	if got := row.Get("Date"); got != "2025-01-01" {
		t.Fatalf("date field = %q", got)
	}
}

func TestReadTableCSVPreservesFieldWhitespace(t *testing.T) {
	data := "Title,Notes\nComic Con,  keep the padding  \nPAX,\"  quoted padding  \"\n"
	table, err := ReadTable("events.csv", strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := table.Rows[0].Get("Notes"); got != "  keep the padding  " {
		t.Fatalf("plain field = %q", got)
	}
	if got := table.Rows[1].Get("Notes"); got != "  quoted padding  " {
		t.Fatalf("quoted field = %q", got)
	}
}

func TestReadTableCSVSkipsBlankLinesKeepsNumbers(t *testing.T) {
	data := "Title,Date\n\nComic Con,2025-01-01\n\nPAX,2025-02-01\n"
	table, err := ReadTable("events.csv", strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0].Index != 3 || table.Rows[1].Index != 5 {
		t.Fatalf("expected original line numbers kept, got %d and %d",
			table.Rows[0].Index, table.Rows[1].Index)
	}
}

func TestReadTableCSVPadsShortRows(t *testing.T) {
	data := "Title,Date,Status\nComic Con,2025-01-01\n"
	table, err := ReadTable("events.csv", strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := table.Rows[0].Get("Status"); got != "" {
		t.Fatalf("expected padded empty value, got %q", got)
	}
}

func TestReadTableCSVErrors(t *testing.T) {
	if _, err := ReadTable("events.csv", strings.NewReader("")); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
	if _, err := ReadTable("events.csv", strings.NewReader(",,\n")); !errors.Is(err, ErrEmptyHeader) {
		t.Fatalf("expected ErrEmptyHeader, got %v", err)
	}
}

func TestExtensionAuthoritative(t *testing.T) {
	for _, name := range []string{"a.csv", "b.XLSX", "c.xls"} {
		if _, err := Extension(name); err != nil {
			t.Fatalf("expected %q accepted: %v", name, err)
		}
	}
	for _, name := range []string{"a.txt", "b.numbers", "noext"} {
		if _, err := Extension(name); !errors.Is(err, ErrUnsupportedExtension) {
			t.Fatalf("expected %q rejected", name)
		}
	}
}

func TestReadGridRejectsCSV(t *testing.T) {
	if _, err := ReadGrid("events.csv", strings.NewReader("a,b\n")); !errors.Is(err, ErrGridRequiresWorkbook) {
		t.Fatalf("expected ErrGridRequiresWorkbook, got %v", err)
	}
}

func TestSplitCSVLineQuoteToggle(t *testing.T) {
	fields := splitCSVLine(`a,"b, c",d`)
	if len(fields) != 3 || fields[1] != "b, c" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	// An unbalanced quote swallows the rest of the line.
	fields = splitCSVLine(`a,"b, c`)
	if len(fields) != 2 {
		t.Fatalf("unexpected fields: %v", fields)
	}
}

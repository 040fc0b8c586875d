package importer

import (
	"strings"
	"testing"
)

func tableRow(headers []string, values ...string) RawRow {
	row := RawRow{Index: 2, Headers: headers, Values: make(map[string]string, len(headers))}
	for i, header := range headers {
		if i < len(values) {
			row.Values[header] = values[i]
		}
	}
	return row
}

func TestNormalizeAppliesMappingAndDefaults(t *testing.T) {
	headers := []string{"Title", "Date", "Status"}
	mapping := NewColumnMapping()
	mapping.Assign("Title", FieldEventTitle)
	mapping.Assign("Date", FieldStartDate)
	mapping.Assign("Status", FieldStatus)

	n := Normalizer{
		Mapping:           mapping,
		Required:          RequiredFields(false),
		DefaultTalentName: "Jane Smith",
	}
	event := n.Normalize(tableRow(headers, "Comic Con", "2025-06-07", "Confirmed"))

	if len(event.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", event.Errors)
	}
	if got := event.Get(FieldEndDate); got != "2025-06-07" {
		t.Fatalf("expected end_date defaulted to start_date, got %q", got)
	}
	if got := event.Get(FieldStatus); got != "booked" {
		t.Fatalf("expected status booked, got %q", got)
	}
	if got := event.Get(FieldTalentName); got != "Jane Smith" {
		t.Fatalf("expected talent default applied, got %q", got)
	}
}

func TestNormalizeReportsMissingRequired(t *testing.T) {
	headers := []string{"Title", "Date"}
	mapping := NewColumnMapping()
	mapping.Assign("Title", FieldEventTitle)
	mapping.Assign("Date", FieldStartDate)

	n := Normalizer{Mapping: mapping, Required: RequiredFields(false)}
	event := n.Normalize(tableRow(headers, "   ", "2025-06-07"))

	if !event.HasBlockingErrors() {
		t.Fatal("expected blocking error for blank title")
	}
	if len(event.Errors) != 1 || event.Errors[0] != "Missing event_title" {
		t.Fatalf("unexpected errors: %v", event.Errors)
	}
}

func TestNormalizeDayColumnLayoutSkipsEndDateDefault(t *testing.T) {
	headers := []string{"Event"}
	mapping := NewColumnMapping()
	mapping.Assign("Event", FieldEventTitle)

	n := Normalizer{Mapping: mapping, Required: RequiredFields(true), DayColumnLayout: true}
	event := n.Normalize(tableRow(headers, "Comic Con"))

	if len(event.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", event.Errors)
	}
	if got := event.Get(FieldEndDate); got != "" {
		t.Fatalf("expected no end_date default, got %q", got)
	}
}

func TestWarningsAreNotBlocking(t *testing.T) {
	event := NormalizedEvent{
		Errors: []string{WarningPrefix + " event title missing, marked Available"},
	}
	if event.HasBlockingErrors() {
		t.Fatal("warnings must not block a commit")
	}
	if len(event.Warnings()) != 1 || len(event.BlockingErrors()) != 0 {
		t.Fatalf("unexpected split: warnings=%v blocking=%v", event.Warnings(), event.BlockingErrors())
	}
}

func TestSummarize(t *testing.T) {
	events := []NormalizedEvent{
		{},
		{Errors: []string{"Missing start_date"}},
		{Errors: []string{WarningPrefix + " event title missing, marked Available"}},
	}
	summary := Summarize(events)
	if summary.ToBeCreated != 2 || summary.ToBeSkipped != 1 || summary.ValidationErrors != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if !strings.HasPrefix(WarningPrefix, "warning:") {
		t.Fatalf("unexpected warning prefix %q", WarningPrefix)
	}
}

package importer

import (
	"strings"
	"testing"

	calendar "talentdesk/internal/calendar/domain"
)

type stubStyles struct {
	fills map[[2]int]FillInfo
}

func (s stubStyles) Fill(row, col int) FillInfo {
	if info, ok := s.fills[[2]int{row, col}]; ok {
		return info
	}
	return FillNone
}

func weekendGrid(styles CellStyles, rows ...[]string) *Grid {
	cells := make([][]string, 0, len(rows)+2)
	cells = append(cells, []string{"June 2025", "", "", "", "", ""})
	cells = append(cells, []string{"Status", "Friday", "Saturday", "Sunday", "Event", "Location"})
	cells = append(cells, rows...)
	if styles == nil {
		styles = NoStyles{}
	}
	return &Grid{Source: "schedule.xlsx", Cells: cells, Styles: styles}
}

func TestDetectWeekendMatrix(t *testing.T) {
	grid := weekendGrid(nil)
	if !DetectWeekendMatrix(grid) {
		t.Fatal("expected month header to trigger detection")
	}
	plain := &Grid{Cells: [][]string{{"Title", "Date"}}, Styles: NoStyles{}}
	if DetectWeekendMatrix(plain) {
		t.Fatal("plain header row misdetected")
	}
}

func TestWeekendParseBookedRow(t *testing.T) {
	parser := WeekendMatrixParser{Year: 2025, Policy: FridaySatSun, Timezone: "America/Los_Angeles"}
	grid := weekendGrid(nil,
		[]string{"Booked $5,000", "6", "7", "8", "Comic Con", "San Diego, CA"},
	)

	events := parser.Parse(grid)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	event := events[0]
	if got := event.Get(FieldEventTitle); got != "Comic Con" {
		t.Fatalf("title = %q", got)
	}
	if got := event.Get(FieldStatus); got != string(calendar.StatusBooked) {
		t.Fatalf("status = %q", got)
	}
	// Friday has no fill and the default policy excludes it.
	if got := event.Get(FieldStartDate); got != "2025-06-07" {
		t.Fatalf("start_date = %q", got)
	}
	if got := event.Get(FieldEndDate); got != "2025-06-08" {
		t.Fatalf("end_date = %q", got)
	}
	if got := event.Get(FieldNotesInternal); got != "$5,000" {
		t.Fatalf("notes_internal = %q", got)
	}
	if got := event.Get(FieldLocationCity); got != "San Diego" {
		t.Fatalf("city = %q", got)
	}
	if got := event.Get(FieldLocationState); got != "CA" {
		t.Fatalf("state = %q", got)
	}
	if got := event.Get(FieldLocationCountry); got != "USA" {
		t.Fatalf("country = %q", got)
	}
	if got := event.Get(FieldAllDay); got != "true" {
		t.Fatalf("all_day = %q", got)
	}
	if event.SourceRowID == "" || event.SourceFile != "schedule.xlsx" {
		t.Fatalf("provenance missing: %q %q", event.SourceFile, event.SourceRowID)
	}
}

func TestWeekendParseFridayFillIncluded(t *testing.T) {
	styles := stubStyles{fills: map[[2]int]FillInfo{
		{2, weekendColFriday}: FillPresent,
	}}
	parser := WeekendMatrixParser{Year: 2025, Policy: FridaySatSun}
	grid := weekendGrid(styles,
		[]string{"Booked", "6", "7", "8", "Comic Con", ""},
	)

	events := parser.Parse(grid)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if got := events[0].Get(FieldStartDate); got != "2025-06-06" {
		t.Fatalf("expected Friday included, start_date = %q", got)
	}
}

func TestWeekendParseFridayPolicyFallback(t *testing.T) {
	// NoStyles reports FillUnknown everywhere, the sheet has no style
	// information, so the configured policy decides.
	grid := weekendGrid(NoStyles{},
		[]string{"Booked", "6", "7", "8", "Comic Con", ""},
	)

	satSun := WeekendMatrixParser{Year: 2025, Policy: FridaySatSun}
	if got := satSun.Parse(grid)[0].Get(FieldStartDate); got != "2025-06-07" {
		t.Fatalf("sat-sun policy: start_date = %q", got)
	}

	friSatSun := WeekendMatrixParser{Year: 2025, Policy: FridayFriSatSun}
	if got := friSatSun.Parse(grid)[0].Get(FieldStartDate); got != "2025-06-06" {
		t.Fatalf("fri-sat-sun policy: start_date = %q", got)
	}
}

func TestWeekendParseAutoTitleSingleWarning(t *testing.T) {
	parser := WeekendMatrixParser{Year: 2025, Policy: FridaySatSun, AvailableLabel: "Available"}
	grid := weekendGrid(nil,
		[]string{"", "", "7", "8", "", ""},
	)

	events := parser.Parse(grid)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	event := events[0]
	if got := event.Get(FieldEventTitle); got != "Available" {
		t.Fatalf("title = %q", got)
	}
	if got := event.Get(FieldStatus); got != string(calendar.StatusAvailable) {
		t.Fatalf("status = %q", got)
	}
	if event.HasBlockingErrors() {
		t.Fatalf("auto-title row must stay creatable: %v", event.Errors)
	}
	if warnings := event.Warnings(); len(warnings) != 1 || !strings.Contains(warnings[0], "marked Available") {
		t.Fatalf("expected exactly one warning, got %v", event.Errors)
	}
}

func TestWeekendParseNarrowRowNotCandidate(t *testing.T) {
	// A tally row only three cells wide in the source sheet; the reader
	// pads it to the sheet width but records the original width, so it
	// never reaches the fixed column roles despite the digit.
	parser := WeekendMatrixParser{Year: 2025, Policy: FridaySatSun}
	grid := weekendGrid(nil,
		[]string{"", "", "Total: 12", "", "", ""},
	)
	grid.Widths = []int{6, 6, 3}
	if events := parser.Parse(grid); len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestWeekendParseBlankRowSkipped(t *testing.T) {
	parser := WeekendMatrixParser{Year: 2025, Policy: FridaySatSun}
	grid := weekendGrid(nil,
		[]string{"", "", "", "", "", ""},
	)
	if events := parser.Parse(grid); len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestWeekendParseTitleWithoutDates(t *testing.T) {
	parser := WeekendMatrixParser{Year: 2025, Policy: FridaySatSun}
	grid := weekendGrid(nil,
		[]string{"Booked", "", "", "", "Comic Con", ""},
	)
	events := parser.Parse(grid)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if !events[0].HasBlockingErrors() {
		t.Fatal("expected missing date error")
	}
	if events[0].Errors[0] != "Missing start_date" {
		t.Fatalf("unexpected error: %v", events[0].Errors)
	}
}

func TestWeekendParseUnrecognizedStatusDefaultsToBooked(t *testing.T) {
	parser := WeekendMatrixParser{Year: 2025, Policy: FridaySatSun}
	grid := weekendGrid(nil,
		[]string{"Waiting on contract", "", "7", "", "Comic Con", ""},
	)
	event := parser.Parse(grid)[0]
	if got := event.Get(FieldStatus); got != string(calendar.StatusBooked) {
		t.Fatalf("status = %q", got)
	}
	if got := event.Get(FieldNotesInternal); got != "Waiting on contract" {
		t.Fatalf("notes_internal = %q", got)
	}
	if warnings := event.Warnings(); len(warnings) != 1 {
		t.Fatalf("expected warning for unrecognized status, got %v", event.Errors)
	}
}

func TestWeekendParseInactiveYearIgnored(t *testing.T) {
	parser := WeekendMatrixParser{Year: 2024, Policy: FridaySatSun}
	grid := weekendGrid(nil,
		[]string{"Booked", "", "7", "8", "Comic Con", ""},
	)
	if events := parser.Parse(grid); len(events) != 0 {
		t.Fatalf("rows under a different year header must be ignored, got %d", len(events))
	}
}

func TestWeekendParseStatusKeywords(t *testing.T) {
	cases := map[string]calendar.Status{
		"On Hold":           calendar.StatusHold,
		"Tentative":         calendar.StatusTentative,
		"Canceled":          calendar.StatusCancelled,
		"Personal day":      calendar.StatusNotAvailable,
		"OOO":               calendar.StatusNotAvailable,
		"":                  calendar.StatusAvailable,
		"Booked - retainer": calendar.StatusBooked,
	}
	for text, want := range cases {
		parser := WeekendMatrixParser{Year: 2025, Policy: FridaySatSun}
		grid := weekendGrid(nil,
			[]string{text, "", "7", "", "Some Event", ""},
		)
		event := parser.Parse(grid)[0]
		if got := event.Get(FieldStatus); got != string(want) {
			t.Fatalf("status text %q: got %q, want %q", text, got, want)
		}
	}
}

func TestParseWeekendLocation(t *testing.T) {
	city, state, country := parseWeekendLocation("San Diego, CA", "USA")
	if city != "San Diego" || state != "CA" || country != "USA" {
		t.Fatalf("got %q %q %q", city, state, country)
	}

	city, state, country = parseWeekendLocation("Tokyo", "USA")
	if city != "Tokyo" || state != "" || country != "USA" {
		t.Fatalf("got %q %q %q", city, state, country)
	}

	city, state, country = parseWeekendLocation("Niagara Falls, ON, Canada", "USA")
	if city != "Niagara Falls" || state != "ON" || country != "Canada" {
		t.Fatalf("got %q %q %q", city, state, country)
	}
}

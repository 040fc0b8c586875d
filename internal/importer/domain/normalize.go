package importer

import (
	"fmt"
	"strings"

	calendar "talentdesk/internal/calendar/domain"
)

// Normalizer turns raw rows into normalized events by applying a column
// mapping, filling defaults and collecting validation messages per row.
type Normalizer struct {
	Mapping         ColumnMapping
	Required        []Field
	DayColumnLayout bool
	// DefaultTalentName resolves talent_name when unmapped or blank and a
	// talent was pre-selected by the caller. Empty means no pre-selection.
	DefaultTalentName string
}

// Normalize produces one candidate event per raw row.
func (n Normalizer) Normalize(row RawRow) NormalizedEvent {
	event := NormalizedEvent{
		RowIndex: row.Index,
		Values:   make(map[Field]string),
	}

	for _, header := range row.Headers {
		field, ok := n.Mapping.FieldFor(header)
		if !ok {
			continue
		}
		if value, present := row.Values[header]; present {
			event.Values[field] = value
		}
	}

	for _, field := range n.Required {
		if strings.TrimSpace(event.Values[field]) == "" {
			event.Errors = append(event.Errors, fmt.Sprintf("Missing %s", field))
		}
	}

	// Single-day assumption: header-mapped rows without an explicit end
	// share the start date. Day-column layouts derive both dates elsewhere.
	if !n.DayColumnLayout {
		if event.Values[FieldEndDate] == "" && event.Values[FieldStartDate] != "" {
			event.Values[FieldEndDate] = event.Values[FieldStartDate]
		}
	}

	if strings.TrimSpace(event.Values[FieldTalentName]) == "" && n.DefaultTalentName != "" {
		event.Values[FieldTalentName] = n.DefaultTalentName
	}

	event.Values[FieldStatus] = string(calendar.NormalizeStatus(event.Values[FieldStatus]))

	return event
}

// NormalizeAll normalizes every row of a table.
func (n Normalizer) NormalizeAll(table *Table) []NormalizedEvent {
	if table == nil {
		return nil
	}
	events := make([]NormalizedEvent, 0, len(table.Rows))
	for _, row := range table.Rows {
		events = append(events, n.Normalize(row))
	}
	return events
}

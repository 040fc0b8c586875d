package importer

import "strings"

// DetectDayColumnLayout reports whether the header set encodes day columns:
// all three of friday, saturday and sunday appear, case-insensitively, as
// substrings of some header.
func DetectDayColumnLayout(headers []string) bool {
	days := []string{"friday", "saturday", "sunday"}
	for _, day := range days {
		found := false
		for _, header := range headers {
			if strings.Contains(strings.ToLower(header), day) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type mappingRule struct {
	field Field
	match func(norm string, tokens []string) bool
}

// Rules are evaluated in priority order; the first match wins.
var mappingRules = []mappingRule{
	{FieldTalentName, keywords("talent", "artist")},
	{FieldEventTitle, keywords("title", "event", "show")},
	{FieldStartDate, both(keywords("start", "begin", "from"), keywords("date", "day", "when"))},
	{FieldEndDate, both(keywords("end", "finish", "until"), keywords("date", "day", "when"))},
	{FieldStatus, keywords("status", "state", "booking")},
	{FieldVenueName, keywords("venue", "location", "site")},
	{FieldLocationCity, keywords("city", "town")},
	{FieldLocationState, keywords("state", "province")},
	{FieldURL, keywords("url", "website")},
	{FieldNotesPublic, keywords("notes", "comment", "description")},
}

// dayColumnFields limits heuristic mapping for day-column layouts: day
// columns themselves carry derived dates, so only title, status and
// location headers are proposed.
var dayColumnFields = map[Field]bool{
	FieldEventTitle:    true,
	FieldStatus:        true,
	FieldVenueName:     true,
	FieldLocationCity:  true,
	FieldLocationState: true,
}

// AutoMap proposes a column mapping from header keywords. Headers matching
// no rule stay unmapped; a target field keeps its first matching header.
func AutoMap(headers []string, dayColumnLayout bool) ColumnMapping {
	mapping := NewColumnMapping()
	for _, header := range headers {
		norm := strings.ToLower(strings.TrimSpace(header))
		if norm == "" {
			continue
		}
		if dayColumnLayout && isDayColumn(norm) {
			continue
		}
		tokens := tokenize(norm)
		for _, rule := range mappingRules {
			if dayColumnLayout && !dayColumnFields[rule.field] {
				continue
			}
			if !rule.match(norm, tokens) {
				continue
			}
			if _, taken := mapping.HeaderFor(rule.field); !taken {
				mapping.Assign(header, rule.field)
			}
			break
		}
	}
	return mapping
}

func isDayColumn(norm string) bool {
	return strings.Contains(norm, "friday") ||
		strings.Contains(norm, "saturday") ||
		strings.Contains(norm, "sunday")
}

func tokenize(norm string) []string {
	return strings.FieldsFunc(norm, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}

func keywords(words ...string) func(string, []string) bool {
	return func(norm string, tokens []string) bool {
		for _, word := range words {
			if strings.Contains(norm, word) {
				return true
			}
			for _, token := range tokens {
				if token == word {
					return true
				}
			}
		}
		return false
	}
}

func both(first, second func(string, []string) bool) func(string, []string) bool {
	return func(norm string, tokens []string) bool {
		return first(norm, tokens) && second(norm, tokens)
	}
}

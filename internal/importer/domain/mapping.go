package importer

import "sort"

// ColumnMapping assigns source column headers to canonical target fields.
// Each target field maps from at most one source column.
type ColumnMapping struct {
	byHeader map[string]Field
}

// NewColumnMapping constructs an empty mapping.
func NewColumnMapping() ColumnMapping {
	return ColumnMapping{byHeader: make(map[string]Field)}
}

// Assign maps header to field, clearing any prior column assigned to the
// same target field so the mapping stays one-to-one from the target side.
func (m *ColumnMapping) Assign(header string, field Field) {
	if header == "" || field == "" {
		return
	}
	if m.byHeader == nil {
		m.byHeader = make(map[string]Field)
	}
	for existing, assigned := range m.byHeader {
		if assigned == field {
			delete(m.byHeader, existing)
		}
	}
	m.byHeader[header] = field
}

// Clear removes any assignment to the target field.
func (m *ColumnMapping) Clear(field Field) {
	for header, assigned := range m.byHeader {
		if assigned == field {
			delete(m.byHeader, header)
		}
	}
}

// FieldFor returns the target field assigned to header, if any.
func (m ColumnMapping) FieldFor(header string) (Field, bool) {
	field, ok := m.byHeader[header]
	return field, ok
}

// HeaderFor returns the source column assigned to field, if any.
func (m ColumnMapping) HeaderFor(field Field) (string, bool) {
	for header, assigned := range m.byHeader {
		if assigned == field {
			return header, true
		}
	}
	return "", false
}

// Headers lists mapped source columns in sorted order.
func (m ColumnMapping) Headers() []string {
	headers := make([]string, 0, len(m.byHeader))
	for header := range m.byHeader {
		headers = append(headers, header)
	}
	sort.Strings(headers)
	return headers
}

// Len returns the number of mapped columns.
func (m ColumnMapping) Len() int {
	return len(m.byHeader)
}

// MissingRequired returns required fields without a source column, in the
// canonical field order.
func (m ColumnMapping) MissingRequired(required []Field) []Field {
	var missing []Field
	for _, field := range required {
		if _, ok := m.HeaderFor(field); !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

// RequiredFields returns the target fields that must be populated for a row
// to be valid. Day-column layouts derive dates, so only the title remains.
func RequiredFields(dayColumnLayout bool) []Field {
	if dayColumnLayout {
		return []Field{FieldEventTitle}
	}
	return []Field{FieldEventTitle, FieldStartDate}
}

package application

import (
	"sync"
	"time"

	importer "talentdesk/internal/importer/domain"
)

// ImportFormat names the layout a session parses.
type ImportFormat string

const (
	FormatStandard ImportFormat = "standard"
	FormatWeekend  ImportFormat = "weekend"
)

// Session holds the parsed upload and its working column mapping between
// the upload call and the eventual commit. mu serializes the mapping edits
// and reads coming from concurrent requests on the same session id; closed
// marks a committed session whose map entry has not been observed gone yet.
type Session struct {
	mu     sync.Mutex
	closed bool

	ID         string
	SourceFile string
	Format     ImportFormat
	TalentID   string
	TalentName string
	Year       int
	CreatedAt  time.Time
	ExpiresAt  time.Time

	Table      *importer.Table
	Grid       *importer.Grid
	DayColumns bool
	Mapping    *importer.ColumnMapping
}

// SessionState is the view of a session returned to callers.
type SessionState struct {
	ID         string            `json:"id"`
	SourceFile string            `json:"sourceFile"`
	Format     ImportFormat      `json:"format"`
	TalentID   string            `json:"talentId,omitempty"`
	Year       int               `json:"year,omitempty"`
	DayColumns bool              `json:"dayColumns"`
	Headers    []string          `json:"headers,omitempty"`
	Mapping    map[string]string `json:"mapping,omitempty"`
	Required   []string          `json:"required,omitempty"`
	Unmapped   []string          `json:"unmapped,omitempty"`
	RowCount   int               `json:"rowCount"`
}

func (s *Session) state() *SessionState {
	state := &SessionState{
		ID:         s.ID,
		SourceFile: s.SourceFile,
		Format:     s.Format,
		TalentID:   s.TalentID,
		Year:       s.Year,
		DayColumns: s.DayColumns,
	}
	if s.Table != nil {
		state.Headers = s.Table.Headers
		state.RowCount = len(s.Table.Rows)
	}
	if s.Grid != nil {
		state.RowCount = len(s.Grid.Cells)
	}
	if s.Mapping != nil {
		state.Mapping = make(map[string]string, s.Mapping.Len())
		for _, header := range s.Mapping.Headers() {
			if field, ok := s.Mapping.FieldFor(header); ok {
				state.Mapping[header] = string(field)
			}
		}
		required := importer.RequiredFields(s.DayColumns)
		for _, field := range required {
			state.Required = append(state.Required, string(field))
		}
		for _, field := range s.Mapping.MissingRequired(required) {
			state.Unmapped = append(state.Unmapped, string(field))
		}
	}
	return state
}

package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	calendar "talentdesk/internal/calendar/domain"
	importer "talentdesk/internal/importer/domain"
	"talentdesk/internal/importer/ingest"
	talent "talentdesk/internal/talent/domain"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = errors.New("import: session not found")
	// ErrReplaceNotConfirmed is returned when a replace commit lacks the
	// explicit confirmation flag.
	ErrReplaceNotConfirmed = errors.New("import: replace mode requires confirmation")
)

// MappingError reports required target fields without a source column.
type MappingError struct {
	Missing []importer.Field
}

func (e *MappingError) Error() string {
	names := make([]string, len(e.Missing))
	for i, field := range e.Missing {
		names[i] = string(field)
	}
	return fmt.Sprintf("import: required fields unmapped: %s", strings.Join(names, ", "))
}

// Publisher decouples the service from the event bus.
type Publisher interface {
	Publish(ctx context.Context, event any) error
}

// ImportCommitted is published after a commit persists events.
type ImportCommitted struct {
	SessionID  string    `json:"sessionId"`
	TalentID   string    `json:"talentId,omitempty"`
	SourceFile string    `json:"sourceFile"`
	Format     string    `json:"format"`
	Created    int       `json:"created"`
	Updated    int       `json:"updated"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	At         time.Time `json:"at"`
}

// Service drives import sessions from upload through commit.
type Service struct {
	talents talent.Directory
	events  calendar.EventRepository
	policy  Policy
	logger  *log.Logger

	publisher Publisher
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// Option customizes a Service.
type Option func(*Service)

// WithPublisher wires commit notifications onto the given bus.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService constructs the import service.
func NewService(talents talent.Directory, events calendar.EventRepository, policy Policy, logger *log.Logger, opts ...Option) *Service {
	s := &Service{
		talents:  talents,
		events:   events,
		policy:   policy,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BeginOptions carries upload parameters.
type BeginOptions struct {
	// TalentID pre-selects the talent events are attributed to when a row
	// names none.
	TalentID string
	// Year scopes weekend-matrix parsing and commits.
	Year int
	// Format forces a layout: "standard", "weekend" or "" / "auto".
	Format string
}

// Begin parses an upload, detects its layout and opens a session.
func (s *Service) Begin(ctx context.Context, filename string, file io.Reader, opts BeginOptions) (*SessionState, error) {
	ext, err := ingest.Extension(filename)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("import: read upload: %w", err)
	}

	format := ImportFormat(opts.Format)
	switch opts.Format {
	case "", "auto":
		format = FormatStandard
		if ext != "csv" {
			grid, err := ingest.ReadGrid(filename, bytes.NewReader(data))
			if err != nil {
				return nil, err
			}
			if importer.DetectWeekendMatrix(grid) {
				format = FormatWeekend
			}
		}
	case string(FormatStandard), string(FormatWeekend):
	default:
		return nil, fmt.Errorf("import: unknown format %q", opts.Format)
	}

	now := s.now()
	session := &Session{
		ID:         uuid.NewString(),
		SourceFile: filename,
		Format:     format,
		TalentID:   opts.TalentID,
		Year:       opts.Year,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.policy.TTL()),
	}

	if opts.TalentID != "" {
		selected, err := s.talents.Get(ctx, opts.TalentID)
		if err != nil {
			return nil, err
		}
		if selected == nil {
			return nil, fmt.Errorf("import: unknown talent %q", opts.TalentID)
		}
		session.TalentName = selected.Name
	}

	switch format {
	case FormatWeekend:
		if opts.Year <= 0 {
			return nil, errors.New("import: target year required for weekend matrix")
		}
		grid, err := ingest.ReadGrid(filename, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		session.Grid = grid
	default:
		table, err := ingest.ReadTable(filename, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		session.Table = table
		session.DayColumns = importer.DetectDayColumnLayout(table.Headers)
		mapping := importer.AutoMap(table.Headers, session.DayColumns)
		session.Mapping = &mapping
	}

	// Snapshot before the session becomes reachable by id.
	state := session.state()

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Printf("import session opened id=%s file=%s format=%s", session.ID, filename, format)
	}
	return state, nil
}

// Session returns the current state of a session.
func (s *Service) Session(id string) (*SessionState, error) {
	session, err := s.get(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		return nil, ErrSessionNotFound
	}
	return session.state(), nil
}

// SetMapping applies caller edits keyed by target field. The special source
// value "none" (or "") clears the field's assignment.
func (s *Service) SetMapping(id string, assignments map[string]string) (*SessionState, error) {
	session, err := s.get(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		return nil, ErrSessionNotFound
	}
	if session.Mapping == nil {
		return nil, errors.New("import: session has no column mapping")
	}
	for name, header := range assignments {
		field, ok := importer.ParseField(name)
		if !ok {
			return nil, fmt.Errorf("import: unknown field %q", name)
		}
		if header == "" || strings.EqualFold(header, "none") {
			session.Mapping.Clear(field)
			continue
		}
		if session.Table == nil || !containsHeader(session.Table.Headers, header) {
			return nil, fmt.Errorf("import: unknown source column %q", header)
		}
		session.Mapping.Assign(header, field)
	}
	return session.state(), nil
}

// DryRunReport is the no-side-effect preview of a commit.
type DryRunReport struct {
	Summary importer.ImportSummary `json:"summary"`
	Rows    []RowReport            `json:"rows,omitempty"`
}

// RowReport relays per-row validation messages.
type RowReport struct {
	Row      int      `json:"row"`
	Messages []string `json:"messages"`
}

// DryRun validates the session's rows and reports what a commit would do.
// It has no side effects and may be repeated after mapping edits.
func (s *Service) DryRun(id string) (*DryRunReport, error) {
	session, err := s.get(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		return nil, ErrSessionNotFound
	}
	events, err := s.normalized(session)
	if err != nil {
		return nil, err
	}
	report := &DryRunReport{Summary: importer.Summarize(events)}
	for _, event := range events {
		if len(event.Errors) == 0 {
			continue
		}
		report.Rows = append(report.Rows, RowReport{Row: event.RowIndex, Messages: event.Errors})
	}
	return report, nil
}

// CommitOptions carries commit parameters.
type CommitOptions struct {
	// Mode selects merge or replace for weekend-matrix commits. Empty means
	// merge.
	Mode string
	// ConfirmReplace must be set for replace mode.
	ConfirmReplace bool
}

// Commit persists the session's valid rows and closes the session.
func (s *Service) Commit(ctx context.Context, id string, opts CommitOptions) (*importer.CommitResult, error) {
	session, err := s.get(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		return nil, ErrSessionNotFound
	}
	events, err := s.normalized(session)
	if err != nil {
		return nil, err
	}

	var result importer.CommitResult
	switch session.Format {
	case FormatWeekend:
		result, err = s.commitWeekend(ctx, session, events, opts)
	default:
		result, err = s.commitStandard(ctx, session, events)
	}
	if err != nil {
		return nil, err
	}

	session.closed = true
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Printf("import committed id=%s file=%s created=%d updated=%d skipped=%d failed=%d",
			id, session.SourceFile, result.Created, result.Updated, result.Skipped, result.Failed)
	}
	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, ImportCommitted{
			SessionID:  id,
			TalentID:   session.TalentID,
			SourceFile: session.SourceFile,
			Format:     string(session.Format),
			Created:    result.Created,
			Updated:    result.Updated,
			Skipped:    result.Skipped,
			Failed:     result.Failed,
			At:         s.now(),
		})
	}
	return &result, nil
}

func (s *Service) commitStandard(ctx context.Context, session *Session, events []importer.NormalizedEvent) (importer.CommitResult, error) {
	var result importer.CommitResult
	records := make([]calendar.Event, 0, len(events))
	for _, event := range events {
		if event.HasBlockingErrors() {
			result.Skipped++
			continue
		}
		talentID, err := s.resolveTalent(ctx, session, event)
		if err != nil {
			return result, err
		}
		records = append(records, buildEvent(event, talentID, session.SourceFile))
	}
	created, err := s.events.CreateBatch(ctx, records)
	if err != nil {
		return result, fmt.Errorf("import: commit: %w", err)
	}
	result.Created = created
	return result, nil
}

func (s *Service) commitWeekend(ctx context.Context, session *Session, events []importer.NormalizedEvent, opts CommitOptions) (importer.CommitResult, error) {
	var result importer.CommitResult

	mode := calendar.CommitModeMerge
	if opts.Mode != "" {
		parsed, ok := calendar.ParseCommitMode(opts.Mode)
		if !ok {
			return result, fmt.Errorf("import: unknown commit mode %q", opts.Mode)
		}
		mode = parsed
	}
	if mode == calendar.CommitModeReplace && !opts.ConfirmReplace {
		return result, ErrReplaceNotConfirmed
	}
	if session.TalentID == "" {
		return result, errors.New("import: talent required for weekend-matrix commit")
	}

	records := make([]calendar.Event, 0, len(events))
	for _, event := range events {
		if event.HasBlockingErrors() {
			result.Skipped++
			continue
		}
		records = append(records, buildEvent(event, session.TalentID, session.SourceFile))
	}

	outcome, err := s.events.CommitYear(ctx, session.TalentID, session.Year, mode, records)
	if err != nil {
		return result, fmt.Errorf("import: commit: %w", err)
	}
	result.Created = outcome.Created
	result.Updated = outcome.Updated
	result.Skipped += outcome.Skipped
	result.Failed = outcome.Failed
	result.Errors = outcome.Errors
	return result, nil
}

// resolveTalent maps a row's talent name to an id, falling back to the
// session's pre-selected talent.
func (s *Service) resolveTalent(ctx context.Context, session *Session, event importer.NormalizedEvent) (string, error) {
	name := strings.TrimSpace(event.Get(importer.FieldTalentName))
	if name != "" && !strings.EqualFold(name, session.TalentName) {
		found, err := s.talents.FindByName(ctx, name)
		if err != nil {
			return "", err
		}
		if found != nil {
			return found.ID, nil
		}
	}
	return session.TalentID, nil
}

func (s *Service) normalized(session *Session) ([]importer.NormalizedEvent, error) {
	switch session.Format {
	case FormatWeekend:
		parser := importer.WeekendMatrixParser{
			Year:           session.Year,
			Policy:         s.policy.FridayPolicy(),
			AvailableLabel: s.policy.AvailableLabel,
			Timezone:       s.policy.DefaultTimezone,
			DefaultCountry: s.policy.DefaultCountry,
		}
		return parser.Parse(session.Grid), nil
	default:
		required := importer.RequiredFields(session.DayColumns)
		if missing := session.Mapping.MissingRequired(required); len(missing) > 0 {
			return nil, &MappingError{Missing: missing}
		}
		normalizer := importer.Normalizer{
			Mapping:           *session.Mapping,
			Required:          required,
			DayColumnLayout:   session.DayColumns,
			DefaultTalentName: session.TalentName,
		}
		return normalizer.NormalizeAll(session.Table), nil
	}
}

// Sweep drops sessions past their expiry and returns how many were removed.
func (s *Service) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 && s.logger != nil {
		s.logger.Printf("import sessions expired count=%d", removed)
	}
	return removed
}

func (s *Service) get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.now().After(session.ExpiresAt) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func buildEvent(event importer.NormalizedEvent, talentID, sourceFile string) calendar.Event {
	allDay := parseBoolish(event.Get(importer.FieldAllDay))
	sourceRowID := event.SourceRowID
	if sourceRowID == "" {
		sourceRowID = fmt.Sprintf("row-%d", event.RowIndex)
	}
	source := event.SourceFile
	if source == "" {
		source = sourceFile
	}
	return calendar.Event{
		TalentID:        talentID,
		Title:           strings.TrimSpace(event.Get(importer.FieldEventTitle)),
		Status:          calendar.Status(event.Get(importer.FieldStatus)),
		StartDate:       strings.TrimSpace(event.Get(importer.FieldStartDate)),
		EndDate:         strings.TrimSpace(event.Get(importer.FieldEndDate)),
		StartTime:       strings.TrimSpace(event.Get(importer.FieldStartTime)),
		EndTime:         strings.TrimSpace(event.Get(importer.FieldEndTime)),
		Timezone:        strings.TrimSpace(event.Get(importer.FieldTimezone)),
		AllDay:          allDay,
		VenueName:       strings.TrimSpace(event.Get(importer.FieldVenueName)),
		LocationCity:    strings.TrimSpace(event.Get(importer.FieldLocationCity)),
		LocationState:   strings.TrimSpace(event.Get(importer.FieldLocationState)),
		LocationCountry: strings.TrimSpace(event.Get(importer.FieldLocationCountry)),
		AddressLine:     strings.TrimSpace(event.Get(importer.FieldAddressLine)),
		ContactName:     strings.TrimSpace(event.Get(importer.FieldContactName)),
		ContactEmail:    strings.TrimSpace(event.Get(importer.FieldContactEmail)),
		ContactPhone:    strings.TrimSpace(event.Get(importer.FieldContactPhone)),
		URL:             strings.TrimSpace(event.Get(importer.FieldURL)),
		NotesInternal:   strings.TrimSpace(event.Get(importer.FieldNotesInternal)),
		NotesPublic:     strings.TrimSpace(event.Get(importer.FieldNotesPublic)),
		TravelIn:        strings.TrimSpace(event.Get(importer.FieldTravelIn)),
		TravelOut:       strings.TrimSpace(event.Get(importer.FieldTravelOut)),
		SourceFile:      source,
		SourceRowID:     sourceRowID,
	}
}

func parseBoolish(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "y", "1":
		return true
	default:
		return false
	}
}

func containsHeader(headers []string, header string) bool {
	for _, h := range headers {
		if h == header {
			return true
		}
	}
	return false
}

package calendar

import (
	"context"
	"errors"
	"time"
)

// DateLayout is the wire format for event dates.
const DateLayout = "2006-01-02"

// Event represents a persisted calendar event for a talent.
type Event struct {
	ID              string
	TalentID        string
	Title           string
	Status          Status
	StartDate       string
	EndDate         string
	StartTime       string
	EndTime         string
	Timezone        string
	AllDay          bool
	VenueName       string
	LocationCity    string
	LocationState   string
	LocationCountry string
	AddressLine     string
	ContactName     string
	ContactEmail    string
	ContactPhone    string
	URL             string
	NotesInternal   string
	NotesPublic     string
	TravelIn        string
	TravelOut       string
	SourceFile      string
	SourceRowID     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks event invariants.
func (e Event) Validate() error {
	if e.Title == "" {
		return errors.New("event: empty title")
	}
	if !ValidStatus(e.Status) {
		return errors.New("event: invalid status")
	}
	if e.StartDate == "" {
		return errors.New("event: empty start date")
	}
	if _, err := time.Parse(DateLayout, e.StartDate); err != nil {
		return errors.New("event: malformed start date")
	}
	if e.EndDate != "" {
		if _, err := time.Parse(DateLayout, e.EndDate); err != nil {
			return errors.New("event: malformed end date")
		}
		if e.EndDate < e.StartDate {
			return errors.New("event: end date before start date")
		}
	}
	return nil
}

// CommitMode selects how a bulk year commit treats existing rows.
type CommitMode string

const (
	// CommitModeMerge upserts into the existing year.
	CommitModeMerge CommitMode = "merge"
	// CommitModeReplace deletes the talent's target-year rows first. Destructive.
	CommitModeReplace CommitMode = "replace"
)

// ParseCommitMode validates a commit mode string.
func ParseCommitMode(value string) (CommitMode, bool) {
	switch CommitMode(value) {
	case CommitModeMerge, CommitModeReplace:
		return CommitMode(value), true
	default:
		return "", false
	}
}

// CommitOutcome reports what a bulk year commit did.
type CommitOutcome struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// EventRepository manages calendar event persistence.
type EventRepository interface {
	CreateBatch(ctx context.Context, events []Event) (int, error)
	CommitYear(ctx context.Context, talentID string, year int, mode CommitMode, events []Event) (CommitOutcome, error)
	ListByTalent(ctx context.Context, talentID, from, to string) ([]Event, error)
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	calendar "talentdesk/internal/calendar/domain"
)

const defaultEventsTable = "calendar_events"

// EventRepository persists calendar events.
type EventRepository struct {
	db    *sql.DB
	table string
}

// NewEventRepository constructs a repository.
func NewEventRepository(db *sql.DB, opts ...EventOption) *EventRepository {
	repo := &EventRepository{db: db, table: defaultEventsTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// EventOption configures the repository.
type EventOption func(*EventRepository)

// WithEventsTable overrides the default table name.
func WithEventsTable(table string) EventOption {
	return func(repo *EventRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

const eventColumns = `id, talent_id, title, status, start_date, end_date,
	start_time, end_time, timezone, all_day,
	venue_name, location_city, location_state, location_country, address_line,
	contact_name, contact_email, contact_phone, url,
	notes_internal, notes_public, travel_in, travel_out,
	source_file, source_row_id, created_at, updated_at`

// CreateBatch inserts events in a single transaction. Any invalid event or
// insert failure aborts the whole batch.
func (r *EventRepository) CreateBatch(ctx context.Context, events []calendar.Event) (int, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("event repo: nil db")
	}
	if len(events) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, event := range events {
		if err := event.Validate(); err != nil {
			_ = tx.Rollback()
			return 0, err
		}
		if err := r.insert(ctx, tx, event); err != nil {
			_ = tx.Rollback()
			return 0, err
		}
		created++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return created, nil
}

// CommitYear applies a bulk commit scoped to a talent's target year. Replace
// mode deletes the talent's rows for that year first. Per-event failures are
// counted without aborting the commit.
func (r *EventRepository) CommitYear(ctx context.Context, talentID string, year int, mode calendar.CommitMode, events []calendar.Event) (calendar.CommitOutcome, error) {
	var outcome calendar.CommitOutcome
	if r == nil || r.db == nil {
		return outcome, errors.New("event repo: nil db")
	}
	if talentID == "" {
		return outcome, errors.New("event repo: empty talent id")
	}
	if year <= 0 {
		return outcome, errors.New("event repo: invalid year")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return outcome, err
	}

	if mode == calendar.CommitModeReplace {
		query := fmt.Sprintf(`
DELETE FROM %s
WHERE talent_id = $1 AND start_date >= $2 AND start_date <= $3`, r.table)
		from := fmt.Sprintf("%04d-01-01", year)
		to := fmt.Sprintf("%04d-12-31", year)
		if _, err := tx.ExecContext(ctx, query, talentID, from, to); err != nil {
			_ = tx.Rollback()
			return outcome, err
		}
	}

	for _, event := range events {
		if err := event.Validate(); err != nil {
			outcome.Skipped++
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s: %v", event.SourceRowID, err))
			continue
		}

		existingID, err := r.findExisting(ctx, tx, event)
		if err != nil {
			outcome.Failed++
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s: %v", event.SourceRowID, err))
			continue
		}
		if existingID != "" {
			if err := r.update(ctx, tx, existingID, event); err != nil {
				outcome.Failed++
				outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s: %v", event.SourceRowID, err))
				continue
			}
			outcome.Updated++
			continue
		}
		if err := r.insert(ctx, tx, event); err != nil {
			outcome.Failed++
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s: %v", event.SourceRowID, err))
			continue
		}
		outcome.Created++
	}

	if err := tx.Commit(); err != nil {
		return calendar.CommitOutcome{}, err
	}
	return outcome, nil
}

// ListByTalent returns a talent's events, optionally bounded by start date.
func (r *EventRepository) ListByTalent(ctx context.Context, talentID, from, to string) ([]calendar.Event, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("event repo: nil db")
	}
	if talentID == "" {
		return nil, errors.New("event repo: empty talent id")
	}

	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE talent_id = $1
	AND ($2 = '' OR start_date >= $2)
	AND ($3 = '' OR start_date <= $3)
ORDER BY start_date, title`, eventColumns, r.table)

	rows, err := r.db.QueryContext(ctx, query, talentID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []calendar.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// findExisting matches on talent, title and start date, the identity used
// for merge upserts.
func (r *EventRepository) findExisting(ctx context.Context, tx *sql.Tx, event calendar.Event) (string, error) {
	query := fmt.Sprintf(`
SELECT id
FROM %s
WHERE talent_id = $1 AND LOWER(title) = LOWER($2) AND start_date = $3
LIMIT 1`, r.table)

	var id string
	err := tx.QueryRowContext(ctx, query, event.TalentID, event.Title, event.StartDate).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *EventRepository) insert(ctx context.Context, tx *sql.Tx, event calendar.Event) error {
	id := event.ID
	if id == "" {
		id = uuid.NewString()
	}
	query := fmt.Sprintf(`
INSERT INTO %s (
	id, talent_id, title, status, start_date, end_date,
	start_time, end_time, timezone, all_day,
	venue_name, location_city, location_state, location_country, address_line,
	contact_name, contact_email, contact_phone, url,
	notes_internal, notes_public, travel_in, travel_out,
	source_file, source_row_id
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25
)`, r.table)

	_, err := tx.ExecContext(ctx, query,
		id, event.TalentID, event.Title, string(event.Status), event.StartDate, event.EndDate,
		event.StartTime, event.EndTime, event.Timezone, event.AllDay,
		event.VenueName, event.LocationCity, event.LocationState, event.LocationCountry, event.AddressLine,
		event.ContactName, event.ContactEmail, event.ContactPhone, event.URL,
		event.NotesInternal, event.NotesPublic, event.TravelIn, event.TravelOut,
		event.SourceFile, event.SourceRowID,
	)
	return err
}

func (r *EventRepository) update(ctx context.Context, tx *sql.Tx, id string, event calendar.Event) error {
	query := fmt.Sprintf(`
UPDATE %s SET
	status = $2,
	end_date = $3,
	start_time = $4,
	end_time = $5,
	timezone = $6,
	all_day = $7,
	venue_name = $8,
	location_city = $9,
	location_state = $10,
	location_country = $11,
	address_line = $12,
	contact_name = $13,
	contact_email = $14,
	contact_phone = $15,
	url = $16,
	notes_internal = $17,
	notes_public = $18,
	travel_in = $19,
	travel_out = $20,
	source_file = $21,
	source_row_id = $22,
	updated_at = NOW()
WHERE id = $1`, r.table)

	_, err := tx.ExecContext(ctx, query,
		id, string(event.Status), event.EndDate,
		event.StartTime, event.EndTime, event.Timezone, event.AllDay,
		event.VenueName, event.LocationCity, event.LocationState, event.LocationCountry, event.AddressLine,
		event.ContactName, event.ContactEmail, event.ContactPhone, event.URL,
		event.NotesInternal, event.NotesPublic, event.TravelIn, event.TravelOut,
		event.SourceFile, event.SourceRowID,
	)
	return err
}

func scanEvent(rows *sql.Rows) (calendar.Event, error) {
	var event calendar.Event
	var status string
	err := rows.Scan(
		&event.ID, &event.TalentID, &event.Title, &status, &event.StartDate, &event.EndDate,
		&event.StartTime, &event.EndTime, &event.Timezone, &event.AllDay,
		&event.VenueName, &event.LocationCity, &event.LocationState, &event.LocationCountry, &event.AddressLine,
		&event.ContactName, &event.ContactEmail, &event.ContactPhone, &event.URL,
		&event.NotesInternal, &event.NotesPublic, &event.TravelIn, &event.TravelOut,
		&event.SourceFile, &event.SourceRowID, &event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		return event, err
	}
	event.Status = calendar.Status(status)
	event.CreatedAt = event.CreatedAt.UTC()
	event.UpdatedAt = event.UpdatedAt.UTC()
	return event, nil
}

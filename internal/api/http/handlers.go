package apihttp

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	calendar "talentdesk/internal/calendar/domain"
)

const timeLayout = time.RFC3339

// EventsHandler serves calendar event queries.
type EventsHandler struct {
	db *sql.DB
}

// NewEventsHandler constructs an EventsHandler.
func NewEventsHandler(db *sql.DB) *EventsHandler {
	return &EventsHandler{db: db}
}

// ServeHTTP handles GET /api/v1/events.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.db == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	talentID := r.URL.Query().Get("talent_id")
	if talentID == "" {
		http.Error(w, "talent_id is required", http.StatusBadRequest)
		return
	}
	from, err := parseDateQuery(r, "from")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	to, err := parseDateQuery(r, "to")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	status := r.URL.Query().Get("status")
	if status != "" && !calendar.ValidStatus(calendar.Status(status)) {
		http.Error(w, "unknown status", http.StatusBadRequest)
		return
	}

	rows, err := queryEvents(r.Context(), h.db, talentID, from, to, status)
	if err != nil {
		http.Error(w, "query events error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}

// ExportEventsCSVHandler serves calendar event CSV exports.
type ExportEventsCSVHandler struct {
	db *sql.DB
}

// NewExportEventsCSVHandler constructs an ExportEventsCSVHandler.
func NewExportEventsCSVHandler(db *sql.DB) *ExportEventsCSVHandler {
	return &ExportEventsCSVHandler{db: db}
}

// ServeHTTP handles GET /api/v1/exports/events.csv.
func (h *ExportEventsCSVHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.db == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	talentID := r.URL.Query().Get("talent_id")
	if talentID == "" {
		http.Error(w, "talent_id is required", http.StatusBadRequest)
		return
	}
	from, err := parseDateQuery(r, "from")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	to, err := parseDateQuery(r, "to")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows, err := queryEvents(r.Context(), h.db, talentID, from, to, "")
	if err != nil {
		http.Error(w, "query events error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="events.csv"`)
	writer := csv.NewWriter(w)
	_ = writer.Write([]string{
		"talent_id",
		"title",
		"status",
		"start_date",
		"end_date",
		"all_day",
		"venue_name",
		"location_city",
		"location_state",
		"location_country",
		"url",
		"notes_public",
		"source_file",
		"created_at",
	})
	for _, row := range rows {
		_ = writer.Write([]string{
			row.TalentID,
			row.Title,
			row.Status,
			row.StartDate,
			row.EndDate,
			strconv.FormatBool(row.AllDay),
			row.VenueName,
			row.LocationCity,
			row.LocationState,
			row.LocationCountry,
			row.URL,
			row.NotesPublic,
			row.SourceFile,
			formatTime(row.CreatedAt),
		})
	}
	writer.Flush()
}

// TalentsHandler serves the talent directory listing.
type TalentsHandler struct {
	db *sql.DB
}

// NewTalentsHandler constructs a TalentsHandler.
func NewTalentsHandler(db *sql.DB) *TalentsHandler {
	return &TalentsHandler{db: db}
}

// ServeHTTP handles GET /api/v1/talents.
func (h *TalentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.db == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	rows, err := queryTalents(r.Context(), h.db)
	if err != nil {
		http.Error(w, "query talents error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}

type eventRow struct {
	ID              string    `json:"id"`
	TalentID        string    `json:"talent_id"`
	Title           string    `json:"title"`
	Status          string    `json:"status"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	AllDay          bool      `json:"all_day"`
	VenueName       string    `json:"venue_name"`
	LocationCity    string    `json:"location_city"`
	LocationState   string    `json:"location_state"`
	LocationCountry string    `json:"location_country"`
	URL             string    `json:"url"`
	NotesPublic     string    `json:"notes_public"`
	SourceFile      string    `json:"source_file"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type talentRow struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

func queryEvents(ctx context.Context, db *sql.DB, talentID, from, to, status string) ([]eventRow, error) {
	rows, err := db.QueryContext(ctx, `
SELECT
	id,
	talent_id,
	title,
	status,
	start_date,
	end_date,
	all_day,
	venue_name,
	location_city,
	location_state,
	location_country,
	url,
	notes_public,
	source_file,
	created_at,
	updated_at
FROM calendar_events
WHERE talent_id = $1
	AND ($2 = '' OR start_date >= $2)
	AND ($3 = '' OR start_date <= $3)
	AND ($4 = '' OR status = $4)
ORDER BY start_date ASC, title ASC`, talentID, from, to, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []eventRow
	for rows.Next() {
		var row eventRow
		if err := rows.Scan(
			&row.ID,
			&row.TalentID,
			&row.Title,
			&row.Status,
			&row.StartDate,
			&row.EndDate,
			&row.AllDay,
			&row.VenueName,
			&row.LocationCity,
			&row.LocationState,
			&row.LocationCountry,
			&row.URL,
			&row.NotesPublic,
			&row.SourceFile,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		row.CreatedAt = row.CreatedAt.UTC()
		row.UpdatedAt = row.UpdatedAt.UTC()
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func queryTalents(ctx context.Context, db *sql.DB) ([]talentRow, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, name, email, active
FROM talents
ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []talentRow
	for rows.Next() {
		var row talentRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Email, &row.Active); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func parseDateQuery(r *http.Request, key string) (string, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return "", nil
	}
	if _, err := time.Parse(calendar.DateLayout, value); err != nil {
		return "", errors.New(key + " must be YYYY-MM-DD")
	}
	return value, nil
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(timeLayout)
}

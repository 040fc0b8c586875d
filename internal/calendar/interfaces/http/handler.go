package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	calendar "talentdesk/internal/calendar/domain"
	"talentdesk/internal/calendar/interfaces"
	"talentdesk/internal/observability/metrics"
	talent "talentdesk/internal/talent/domain"
)

// ExportHandler serves calendar export downloads.
type ExportHandler struct {
	talents talent.Directory
	events  calendar.EventRepository
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(talents talent.Directory, events calendar.EventRepository) (*ExportHandler, error) {
	if talents == nil || events == nil {
		return nil, errors.New("export handler: nil dependency")
	}
	return &ExportHandler{talents: talents, events: events}, nil
}

// ServeHTTP handles GET /api/v1/talents/{id}/calendar.{xlsx|pdf}.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/talents/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	talentID := parts[0]

	var format string
	switch parts[1] {
	case "calendar.xlsx":
		format = "xlsx"
	case "calendar.pdf":
		format = "pdf"
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}

	start := time.Now()
	t, err := h.talents.Get(r.Context(), talentID)
	if err != nil {
		metrics.ObserveExport(format, metrics.ResultError, time.Since(start))
		http.Error(w, "talent lookup failed", http.StatusInternalServerError)
		return
	}
	if t == nil {
		http.Error(w, "talent not found", http.StatusNotFound)
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	events, err := h.events.ListByTalent(r.Context(), talentID, from, to)
	if err != nil {
		metrics.ObserveExport(format, metrics.ResultError, time.Since(start))
		http.Error(w, "query events error", http.StatusInternalServerError)
		return
	}

	var payload []byte
	var contentType, filename string
	switch format {
	case "xlsx":
		payload, err = interfaces.BuildCalendarXLSX(t, events)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "calendar.xlsx"
	case "pdf":
		payload, err = interfaces.BuildCalendarPDF(t, events)
		contentType = "application/pdf"
		filename = "calendar.pdf"
	}
	if err != nil {
		metrics.ObserveExport(format, metrics.ResultError, time.Since(start))
		http.Error(w, "export build failed", http.StatusInternalServerError)
		return
	}
	metrics.ObserveExport(format, metrics.ResultSuccess, time.Since(start))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(payload)
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"talentdesk/internal/audit"
	"talentdesk/internal/auth"
	"talentdesk/internal/importer/application"
	importer "talentdesk/internal/importer/domain"
	"talentdesk/internal/importer/ingest"
	"talentdesk/internal/observability/metrics"
)

const maxUploadBytes = 16 << 20

// Handler serves import session endpoints.
type Handler struct {
	service       *application.Service
	talentChecker auth.TalentTenantChecker
	auditLogger   audit.Logger
}

// NewHandler constructs a Handler.
func NewHandler(service *application.Service, talentChecker auth.TalentTenantChecker, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("import handler: nil service")
	}
	return &Handler{service: service, talentChecker: talentChecker, auditLogger: auditLogger}, nil
}

// ServeHTTP routes import requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/imports" {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleUpload(w, r)
		return
	}

	if !strings.HasPrefix(r.URL.Path, "/api/v1/imports/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/imports/")
	parts := strings.Split(path, "/")
	if len(parts) < 1 || parts[0] == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	sessionID := parts[0]

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.handleState(w, sessionID)
	case len(parts) == 2 && parts[1] == "mapping" && r.Method == http.MethodGet:
		h.handleState(w, sessionID)
	case len(parts) == 2 && parts[1] == "mapping" && r.Method == http.MethodPut:
		h.handleSetMapping(w, r, sessionID)
	case len(parts) == 2 && parts[1] == "dry-run" && r.Method == http.MethodPost:
		h.handleDryRun(w, sessionID)
	case len(parts) == 2 && parts[1] == "commit" && r.Method == http.MethodPost:
		h.handleCommit(w, r, sessionID)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		metrics.IncUploadError("multipart")
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		metrics.IncUploadError("missing_file")
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	opts := application.BeginOptions{
		TalentID: r.FormValue("talent_id"),
		Format:   r.FormValue("format"),
	}
	if yearValue := r.FormValue("year"); yearValue != "" {
		year, err := strconv.Atoi(yearValue)
		if err != nil {
			http.Error(w, "year must be a number", http.StatusBadRequest)
			return
		}
		opts.Year = year
	}

	if opts.TalentID != "" {
		if err := h.ensureTalentTenant(r, opts.TalentID); err != nil {
			respondTenantError(w, err)
			return
		}
	}

	state, err := h.service.Begin(r.Context(), header.Filename, file, opts)
	if err != nil {
		metrics.ObserveUpload(metrics.ResultError, time.Since(start))
		if errors.Is(err, ingest.ErrUnsupportedExtension) {
			metrics.IncUploadError("extension")
			http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
			return
		}
		metrics.IncUploadError("parse")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	metrics.ObserveUpload(metrics.ResultSuccess, time.Since(start))

	// Best-effort preview; absent while required fields are unmapped.
	resp := struct {
		*application.SessionState
		Summary *importer.ImportSummary `json:"summary,omitempty"`
	}{SessionState: state}
	if report, err := h.service.DryRun(state.ID); err == nil {
		resp.Summary = &report.Summary
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resp)
	h.logAudit(r, state.ID, state.TalentID, audit.ActionImportUpload, map[string]any{
		"file":   state.SourceFile,
		"format": state.Format,
		"rows":   state.RowCount,
	})
}

func (h *Handler) handleState(w http.ResponseWriter, sessionID string) {
	state, err := h.service.Session(sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(state)
}

func (h *Handler) handleSetMapping(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req struct {
		Mapping map[string]string `json:"mapping"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	state, err := h.service.SetMapping(sessionID, req.Mapping)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(state)
	h.logAudit(r, sessionID, state.TalentID, audit.ActionImportMapping, map[string]any{
		"mapping": req.Mapping,
	})
}

func (h *Handler) handleDryRun(w http.ResponseWriter, sessionID string) {
	report, err := h.service.DryRun(sessionID)
	if err != nil {
		metrics.IncDryRun(metrics.ResultError)
		respondServiceError(w, err)
		return
	}
	metrics.IncDryRun(metrics.ResultSuccess)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}

func (h *Handler) handleCommit(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req struct {
		Mode           string `json:"mode"`
		ConfirmReplace bool   `json:"confirmReplace"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
	}
	if req.Mode == "replace" && !auth.RoleAtLeast(auth.RoleFromContext(r.Context()), auth.RoleAdmin) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	state, err := h.service.Session(sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if state.TalentID != "" {
		if err := h.ensureTalentTenant(r, state.TalentID); err != nil {
			respondTenantError(w, err)
			return
		}
	}

	start := time.Now()
	result, err := h.service.Commit(r.Context(), sessionID, application.CommitOptions{
		Mode:           req.Mode,
		ConfirmReplace: req.ConfirmReplace,
	})
	if err != nil {
		metrics.ObserveCommit(req.Mode, metrics.ResultError, time.Since(start))
		respondServiceError(w, err)
		return
	}
	metrics.ObserveCommit(req.Mode, metrics.ResultSuccess, time.Since(start))
	metrics.AddCommitRows("created", result.Created)
	metrics.AddCommitRows("updated", result.Updated)
	metrics.AddCommitRows("skipped", result.Skipped)
	metrics.AddCommitRows("failed", result.Failed)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
	h.logAudit(r, sessionID, state.TalentID, audit.ActionImportCommit, map[string]any{
		"file":    state.SourceFile,
		"mode":    req.Mode,
		"created": result.Created,
		"updated": result.Updated,
		"skipped": result.Skipped,
		"failed":  result.Failed,
	})
}

func (h *Handler) ensureTalentTenant(r *http.Request, talentID string) error {
	identity := auth.IdentityFromContext(r.Context())
	if identity.TenantID == "" {
		return nil
	}
	if !identity.CanAccessTalent(talentID) {
		return auth.ErrTenantMismatch
	}
	if h.talentChecker == nil {
		return nil
	}
	return h.talentChecker.EnsureTalentTenant(r.Context(), identity.TenantID, talentID)
}

func (h *Handler) logAudit(r *http.Request, sessionID, talentID, action string, meta map[string]any) {
	if h.auditLogger == nil {
		return
	}
	tenantID := auth.TenantIDFromContext(r.Context())
	if tenantID == "" {
		return
	}
	payload, _ := json.Marshal(meta)
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		TenantID:     tenantID,
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "import_session",
		ResourceID:   sessionID,
		TalentID:     talentID,
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

func respondServiceError(w http.ResponseWriter, err error) {
	var mappingErr *application.MappingError
	switch {
	case errors.Is(err, application.ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, application.ErrReplaceNotConfirmed):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &mappingErr):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func respondTenantError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, auth.ErrTenantMismatch) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if errors.Is(err, auth.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	http.Error(w, "tenant check failed", http.StatusInternalServerError)
}

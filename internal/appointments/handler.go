package appointments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/drojedanicolas-commits/drojedanicolas/internal/catalog"
	"github.com/drojedanicolas-commits/drojedanicolas/pkg/logging"
)

// Handler exposes the dashboard's appointment callbacks over HTTP.
type Handler struct {
	repo    Repository
	catalog *catalog.Catalog
	logger  *logging.Logger
}

// NewHandler creates an appointments HTTP handler.
func NewHandler(repo Repository, cat *catalog.Catalog, logger *logging.Logger) *Handler {
	if repo == nil {
		panic("appointments: repository cannot be nil")
	}
	if cat == nil {
		cat = catalog.Default()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, catalog: cat, logger: logger}
}

// List returns all appointments, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	apts, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("appointments: failed to list", "error", err)
		http.Error(w, "failed to load appointments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"appointments": apts})
}

// Create inserts a manually entered appointment. Cost defaults to the
// catalog price for the service and status to pending when omitted.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var apt Appointment
	if err := json.NewDecoder(r.Body).Decode(&apt); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if apt.ID == "" {
		apt.ID = uuid.New().String()
	}
	if apt.Status == "" {
		apt.Status = StatusPending
	}
	if apt.Cost == 0 {
		apt.Cost = h.catalog.Cost(apt.Service)
	}
	if apt.Service == ServiceFollowUp {
		apt.IsFollowUp = true
	}
	if !ValidSource(apt.Source) {
		apt.Source = SourceWeb
	}

	if err := h.repo.Add(r.Context(), apt); err != nil {
		if errors.Is(err, ErrMissingPatientName) || errors.Is(err, ErrMissingSchedule) || errors.Is(err, ErrInvalidStatus) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("appointments: failed to create", "error", err)
		http.Error(w, "failed to store appointment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(apt)
}

// UpdateStatus replaces an appointment's status. Unknown ids are a silent
// no-op, matching the store contract; there is no transition validation.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "appointment id required", http.StatusBadRequest)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !ValidStatus(req.Status) {
		http.Error(w, "invalid appointment status", http.StatusBadRequest)
		return
	}

	if err := h.repo.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.logger.Error("appointments: failed to update status", "error", err, "id", id)
		http.Error(w, "failed to update appointment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

package stats

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/drojedanicolas-commits/drojedanicolas/internal/appointments"
	"github.com/drojedanicolas-commits/drojedanicolas/pkg/logging"
)

// Handler provides the dashboard statistics endpoint.
type Handler struct {
	repo   appointments.Repository
	logger *logging.Logger
}

// NewHandler creates a stats HTTP handler.
func NewHandler(repo appointments.Repository, logger *logging.Logger) *Handler {
	if repo == nil {
		panic("stats: appointment repository cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// GetStats returns the aggregates recomputed from the full appointment list.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	apts, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("stats: failed to list appointments", "error", err)
		http.Error(w, "failed to load appointments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(Aggregate(apts, time.Now())); err != nil {
		h.logger.Error("stats: failed to encode summary", "error", err)
	}
}

package leads

import (
	"encoding/json"
	"net/http"

	"github.com/drojedanicolas-commits/drojedanicolas/pkg/logging"
)

// Handler serves the dashboard leads list.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a leads HTTP handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if repo == nil {
		panic("leads: repository cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// List returns all leads.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("leads: failed to list", "error", err)
		http.Error(w, "failed to load leads", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"leads": all})
}

package integration

import (
	"encoding/json"
	"net/http"

	"github.com/drojedanicolas-commits/drojedanicolas/pkg/logging"
)

// Handler serves the integration tab's static content.
type Handler struct {
	logger *logging.Logger
}

// NewHandler creates an integration HTTP handler.
func NewHandler(logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{logger: logger}
}

// GetBlueprint returns the raw n8n blueprint document for copy-paste.
func (h *Handler) GetBlueprint(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="n8n-blueprint.json"`)
	_, _ = w.Write([]byte(Blueprint))
}

// GetStatus returns the mocked channel connection state.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"status": Status()})
}

package catalog

import (
	"encoding/json"
	"net/http"
)

// Handler serves the read-only price list.
type Handler struct {
	catalog *Catalog
}

// NewHandler creates a catalog HTTP handler.
func NewHandler(c *Catalog) *Handler {
	if c == nil {
		c = Default()
	}
	return &Handler{catalog: c}
}

// GetPrices returns the full price list.
func (h *Handler) GetPrices(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"prices": h.catalog.Prices()})
}

package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/drojedanicolas-commits/drojedanicolas/internal/appointments"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/catalog"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/integration"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/leads"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/stats"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/webchat"
	"github.com/drojedanicolas-commits/drojedanicolas/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	AppointmentsHandler *appointments.Handler
	StatsHandler        *stats.Handler
	LeadsHandler        *leads.Handler
	CatalogHandler      *catalog.Handler
	IntegrationHandler  *integration.Handler
	WebchatHandler      *webchat.Handler
	MetricsHandler      http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Patient-facing chat widget
	if cfg.WebchatHandler != nil {
		r.Route("/webchat", func(r chi.Router) {
			r.Get("/ws", cfg.WebchatHandler.HandleWebSocket)
			r.Post("/message", cfg.WebchatHandler.HandleMessage)
			r.Get("/history", cfg.WebchatHandler.HandleHistory)
			r.Get("/widget.js", cfg.WebchatHandler.HandleWidgetJS)
		})
	}

	// Doctor-facing dashboard API
	r.Route("/api", func(r chi.Router) {
		if cfg.AppointmentsHandler != nil {
			r.Route("/appointments", func(r chi.Router) {
				r.Get("/", cfg.AppointmentsHandler.List)
				r.Post("/", cfg.AppointmentsHandler.Create)
				r.Post("/{id}/status", cfg.AppointmentsHandler.UpdateStatus)
			})
		}
		if cfg.StatsHandler != nil {
			r.Get("/stats", cfg.StatsHandler.GetStats)
		}
		if cfg.LeadsHandler != nil {
			r.Get("/leads", cfg.LeadsHandler.List)
		}
		if cfg.CatalogHandler != nil {
			r.Get("/prices", cfg.CatalogHandler.GetPrices)
		}
		if cfg.IntegrationHandler != nil {
			r.Route("/integration", func(r chi.Router) {
				r.Get("/blueprint", cfg.IntegrationHandler.GetBlueprint)
				r.Get("/status", cfg.IntegrationHandler.GetStatus)
			})
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

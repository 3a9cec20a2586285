package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires the local API the web shell talks to.
func NewRouter(h *Handlers, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/form", h.GetForm)
		r.Put("/form/quantity", h.SetQuantity)
		r.Post("/form/direction", h.BeginConfirmation)
		r.Post("/form/confirm", h.Confirm)
		r.Post("/form/cancel", h.Cancel)

		r.Get("/wallet", h.GetWallet)

		r.Get("/markets", h.GetMarkets)
		r.Post("/markets/{symbol}/favorite", h.ToggleFavorite)

		r.Get("/settings/theme", h.GetTheme)
		r.Put("/settings/theme", h.SetTheme)

		r.Get("/metrics", h.GetMetrics)
	})

	return r
}

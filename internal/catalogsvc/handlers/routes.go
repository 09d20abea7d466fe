package handlers

import (
	"github.com/go-chi/chi"
)

func (h *Handler) SetRoutes(r chi.Router) {
	r.Get("/health", h.HealthHandler)

	r.Route("/api/cards", func(r chi.Router) {
		r.Get("/", h.GetAllCards)
		r.Post("/", h.AddCard)
		r.Post("/multi", h.CreateMultipleCards)
		r.Get("/{id}", h.GetCardByID)
	})
}

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/session/login", h.login)
		r.Get("/api/version/", h.getServerVersion)
	})

	// routes that require a valid session token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/session/logout", h.logout)
		r.Post("/api/vault/seal", h.seal)
		r.Post("/api/vault/unseal", h.unseal)
		r.Get("/api/lockout/status", h.lockoutStatus)
	})

	return router
}

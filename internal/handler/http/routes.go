package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		r.Post("/api/auth/signup", h.signUp)
		r.Post("/api/auth/signin", h.signIn)
		r.Post("/api/auth/federated", h.federatedSignIn)
		r.Get("/api/auth/methods", h.signInMethods)
		r.Post("/api/auth/password-reset", h.requestPasswordReset)
		r.Post("/api/auth/password-reset/confirm", h.confirmPasswordReset)

		r.Get("/api/version", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Group(func(r chi.Router) {
			r.Use(withGZip)

			r.Post("/api/residents", h.createResident)
			r.Get("/api/residents", h.listResidents)
			r.Get("/api/items", h.listItems)
			r.Get("/api/reports", h.reports)
		})

		// blobs are written with an exact Content-Length
		r.Get("/api/reports/download", h.downloadReport)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

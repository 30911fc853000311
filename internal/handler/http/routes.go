package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/version/", h.getServerVersion)
	})

	// routes behind the auth middleware
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/auth/session", h.session)

		r.Route("/api/assistant/{domain}", func(r chi.Router) {
			r.Post("/ask", h.ask)
			r.Get("/history", h.history)
			r.Delete("/history", h.clearHistory)
		})

		r.Route("/api/admin/users", func(r chi.Router) {
			r.Get("/", h.listUsers)
			r.Post("/", h.createUser)
			r.Delete("/{username}", h.deleteUser)
			r.Put("/{username}/password", h.resetPassword)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

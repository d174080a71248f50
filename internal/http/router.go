package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/presence/internal/http/attendance"
	"github.com/MrJamesThe3rd/presence/internal/http/auth"
	"github.com/MrJamesThe3rd/presence/internal/http/employee"
	"github.com/MrJamesThe3rd/presence/internal/http/export"
	"github.com/MrJamesThe3rd/presence/internal/http/session"
)

type Options struct {
	AllowedOrigins []string
	Verifier       auth.Verifier
}

func New(
	opts Options,
	sessionV1 *session.Handler,
	attendanceV1 *attendance.Handler,
	exportV1 *export.Handler,
	employeeV1 *employee.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	requireSession := auth.Middleware(opts.Verifier)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/session", func(r chi.Router) {
			r.With(middleware.AllowContentType("application/json")).Group(sessionV1.Routes)

			r.Group(func(r chi.Router) {
				r.Use(requireSession)
				sessionV1.ProtectedRoutes(r)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(requireSession)

			r.Route("/attendance", attendanceV1.Routes)
			r.Get("/stats", attendanceV1.Stats)
			r.Route("/exports", exportV1.Routes)
			r.Route("/employees", employeeV1.Routes)
		})
	})

	return router
}

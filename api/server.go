/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:       Request logging
  2. Recoverer:    Panic recovery (500 instead of crash)
  3. RequestID:    Unique ID per request for tracing
  4. CORS:         Cross-origin requests for frontend
  5. Authenticate: Bearer token -> Principal (all /api routes)

ROUTE GROUPS:
  /api/availability/*   Availability resolution
  /api/shifts/*         Shift assignment and the week view
  /api/employees/*      Employee management, availability records,
                        pending requests
  /api/organizations/*  Organization management
  /api/invitations      Sign-up invites
  /api/user-info        Caller identity

SEE ALSO:
  - handlers.go: Handler implementations
  - auth.go: Principal resolution
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, provider IdentityProvider) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(Authenticate(provider))

		r.Get("/availability/resolve", h.ResolveAvailability)

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.ListShifts)
			r.Post("/", h.CreateShift)
			r.Put("/{id}", h.UpdateShift)
			r.Delete("/{id}", h.DeleteShift)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Post("/reactivate", h.ReactivateEmployee)

			r.Get("/availabilities-by-organization", h.ListAvailabilitiesByOrganization)

			r.Route("/availabilities", func(r chi.Router) {
				r.Get("/", h.ListAvailabilities)
				r.Post("/", h.CreateAvailability)
				r.Put("/{id}", h.UpdateAvailability)
				r.Delete("/{id}", h.DeleteAvailability)
			})

			r.Route("/pending-requests", func(r chi.Router) {
				r.Get("/", h.ListPendingRequests)
				r.Post("/{id}/approve", h.ApprovePendingRequest)
				r.Post("/{id}/reject", h.RejectPendingRequest)
			})

			r.Get("/{id}", h.GetEmployee)
			r.Put("/{id}", h.UpdateEmployee)
			r.Delete("/{id}", h.DeactivateEmployee)
		})

		r.Route("/organizations", func(r chi.Router) {
			r.Get("/", h.ListOrganizations)
			r.Post("/", h.CreateOrganization)
			r.Get("/{id}", h.GetOrganization)
			r.Put("/{id}", h.UpdateOrganization)
		})

		r.Post("/invitations", h.CreateInvitation)
		r.Get("/user-info", h.UserInfo)
	})

	return r
}

package router

import (
	"net/http"

	"prizehouse-api/internal/handler"
	"prizehouse-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler           *handler.Handler
	SessionHandler    *handler.SessionHandler
	StorefrontHandler *handler.StorefrontHandler
	AdminHandler      *handler.AdminHandler
	AdminAuth         func(http.Handler) http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Admin-Key"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	// Static files (kiosk frontend) - public
	fileServer := http.FileServer(http.Dir("./static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
		}

		// PUBLIC kiosk routes (no auth: the picker is anonymous by design)
		if cfg.SessionHandler != nil {
			r.Get("/students", cfg.SessionHandler.ListStudents)
			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", cfg.SessionHandler.CreateSession)
				r.Get("/{token}", cfg.SessionHandler.GetSession)
				r.Delete("/{token}", cfg.SessionHandler.DeleteSession)
				if cfg.StorefrontHandler != nil {
					r.Post("/{token}/exchanges", cfg.StorefrontHandler.Exchange)
				}
			})
		}
		if cfg.StorefrontHandler != nil {
			r.Get("/prizes", cfg.StorefrontHandler.ListPrizes)
		}

		// ADMIN routes (X-Admin-Key shared secret)
		if cfg.AdminHandler != nil {
			r.Route("/admin", func(r chi.Router) {
				// Login itself carries the password in the body.
				r.Post("/login", cfg.AdminHandler.Login)

				r.Group(func(r chi.Router) {
					if cfg.AdminAuth != nil {
						r.Use(cfg.AdminAuth)
					}

					r.Route("/prizes", func(r chi.Router) {
						r.Post("/", cfg.AdminHandler.CreatePrize)
						r.Put("/{id}", cfg.AdminHandler.UpdatePrize)
						r.Delete("/{id}", cfg.AdminHandler.DeletePrize)
					})

					r.Route("/students", func(r chi.Router) {
						r.Post("/", cfg.AdminHandler.AddStudent)
						r.Post("/import", cfg.AdminHandler.ImportStudents)
						r.Delete("/{id}", cfg.AdminHandler.DeleteStudent)
						r.Post("/{id}/points", cfg.AdminHandler.AdjustPoints)
					})

					r.Get("/logs", cfg.AdminHandler.ListLogs)
					r.Delete("/logs", cfg.AdminHandler.ClearLogs)
					r.Get("/stats", cfg.AdminHandler.Stats)
				})
			})
		}
	})

	return r
}

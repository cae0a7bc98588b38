package router

import (
	"flipdeck-api/internal/handler"
	"flipdeck-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the handlers wired into the router.
type Config struct {
	Handler          *handler.Handler
	ItemHandler      *handler.ItemHandler
	BuildHandler     *handler.BuildHandler
	SaleHandler      *handler.SaleHandler
	PortfolioHandler *handler.PortfolioHandler
	DataHandler      *handler.DataHandler
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
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		if cfg.ItemHandler != nil {
			r.Route("/items", func(r chi.Router) {
				r.Get("/", cfg.ItemHandler.List)
				r.Post("/", cfg.ItemHandler.Create)
				r.Post("/combo-split", cfg.ItemHandler.ComboSplit)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", cfg.ItemHandler.Get)
					r.Put("/", cfg.ItemHandler.Update)
					r.Delete("/", cfg.ItemHandler.Delete)
					r.Post("/sell", cfg.ItemHandler.Sell)
				})
			})
		}

		if cfg.BuildHandler != nil {
			r.Route("/builds", func(r chi.Router) {
				r.Get("/", cfg.BuildHandler.List)
				r.Post("/", cfg.BuildHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", cfg.BuildHandler.Get)
					r.Put("/", cfg.BuildHandler.Update)
					r.Delete("/", cfg.BuildHandler.Delete)
					r.Post("/sell", cfg.BuildHandler.Sell)
					r.Post("/components", cfg.BuildHandler.Attach)
					r.Delete("/components/{itemId}", cfg.BuildHandler.Detach)
				})
			})
		}

		if cfg.SaleHandler != nil {
			r.Route("/sales", func(r chi.Router) {
				r.Get("/", cfg.SaleHandler.List)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", cfg.SaleHandler.Get)
					r.Put("/", cfg.SaleHandler.Update)
					r.Delete("/", cfg.SaleHandler.Delete)
				})
			})
		}

		if cfg.PortfolioHandler != nil {
			r.Get("/portfolio", cfg.PortfolioHandler.Get)
		}

		if cfg.DataHandler != nil {
			r.Get("/export", cfg.DataHandler.Export)
			r.Post("/import", cfg.DataHandler.Import)
			r.Post("/reset", cfg.DataHandler.Reset)
		}
	})

	return r
}

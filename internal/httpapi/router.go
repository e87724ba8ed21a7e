package httpapi

import (
	"net/http"

	"makwell-storefront/internal/logger"
	"makwell-storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type RouterOptions struct {
	CORSOrigin string
	Limiter    *middleware.Limiter
}

func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(opts.CORSOrigin))
	r.Use(middleware.VisitorMiddleware)
	if opts.Limiter != nil {
		r.Use(opts.Limiter.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	})

	r.Get("/healthz", h.Health)
	r.Get("/metrics", h.Metrics)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)
		r.Get("/{id}/images", h.ProductImages)
	})
	r.Post("/images/advance", h.AdvanceImage)
	r.Get("/categories", h.Categories)
	r.Get("/facets", h.Facets)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddCartItem)
		r.Put("/items/{id}", h.SetCartItem)
		r.Delete("/items/{id}", h.RemoveCartItem)
	})
	r.Post("/checkout", h.Checkout)

	r.Route("/preferences", func(r chi.Router) {
		r.Get("/", h.GetPreferences)
		r.Post("/theme/toggle", h.ToggleTheme)
		r.Post("/cta/dismiss", h.DismissCTA)
	})

	return r
}

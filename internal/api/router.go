package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// indexHTML is served at the root. It is informational only.
const indexHTML = "<h1>Bakery API</h1>"

// defaultWSPath is used when websocket.path is not configured.
const defaultWSPath = "/ws"

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.metricsMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeNotFound(w, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)

	if s.metricsCfg.Enabled {
		r.Handle(s.metricsCfg.Path, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	wsPath := s.wsCfg.Path
	if wsPath == "" {
		wsPath = defaultWSPath
	}
	r.Get(wsPath, s.handleWebSocket)

	// API routes
	r.Group(func(r chi.Router) {
		r.Use(s.rateLimitMiddleware)

		r.Route("/bakeries", func(r chi.Router) {
			r.Get("/", s.handleListBakeries)
			r.Get("/{id}", s.handleGetBakery)
			r.Patch("/{id}", s.handleUpdateBakery)
		})

		r.Route("/baked_goods", func(r chi.Router) {
			r.Post("/", s.handleCreateBakedGood)
			r.Get("/by_price", s.handleListBakedGoodsByPrice)
			r.Get("/most_expensive", s.handleMostExpensiveBakedGood)
			r.Delete("/{id}", s.handleDeleteBakedGood)
		})
	})

	return r
}

// handleIndex serves the informational root page.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Best-effort write to response
	w.Write([]byte(indexHTML))
}

// Package http assembles the router: the versioned JSON API, health and
// metrics endpoints, and the cross-cutting middleware around them.
package http

import (
	"log/slog"
	"net/http"
	"time"

	apiv1 "salestrack/internal/api/v1"
	"salestrack/internal/auth"
	"salestrack/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	service *service.Service
	logger  *slog.Logger
	zone    *time.Location
}

func NewServer(service *service.Service, logger *slog.Logger, zone *time.Location) *Server {
	if zone == nil {
		zone = time.UTC
	}
	return &Server{service: service, logger: logger, zone: zone}
}

func (s *Server) Routes() http.Handler {
	registerMetrics()
	limiter := newRateLimiter(5, 30)
	go limiter.cleanupLoop()

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(monitorMiddleware)
	r.Use(limiter.middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	apiHandler := apiv1.NewHandler(s.service, s.zone)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware)
		r.Mount("/", apiHandler.Routes())
	})

	return r
}

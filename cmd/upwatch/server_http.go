package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/upwatch/upwatch/internal/config"
	"github.com/upwatch/upwatch/internal/obs"
	"github.com/upwatch/upwatch/internal/services/checks"
)

func buildHTTPServer(cfg *config.Config, logger *zap.Logger, h *checks.Handler, health func(context.Context) error) *http.Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if cfg.OTEL.Enable {
		r.Use(obs.HTTPMiddleware(cfg.OTEL.ServiceName))
	}

	h.Register(r)
	r.Handle("/metrics", obs.MetricsHandler())
	r.Get("/healthz", obs.HealthHandler(health))

	return &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
}

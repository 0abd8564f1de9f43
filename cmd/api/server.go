package main

import (
	"context"
	"net/http"
	"time"

	"bookmetrics/internal/config"
	"bookmetrics/internal/httpx"
	"bookmetrics/internal/metrics"
)

// pinger reports whether the book source is reachable.
type pinger interface {
	Ping(ctx context.Context) error
}

// newRouter registers the metrics endpoint and the health probes behind the
// middleware chain. rl may be nil to disable rate limiting.
func newRouter(cfg *config.Config, handler *metrics.HTTPHandler, feed pinger, rl *httpx.RateLimitMiddleware) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if feed != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := feed.Ping(ctx); err != nil {
				http.Error(w, "books api not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("/metrics", handler.Get)
	router.HandleFunc("/{$}", handler.Get)

	mws := []httpx.Middleware{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.CORSMiddleware(cfg.CORS.AllowedOrigins),
		httpx.SecurityHeadersMiddleware,
	}
	if rl != nil {
		mws = append(mws, rl.Middleware)
	}
	return httpx.Chain(router, mws...)
}

func newHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}

// Package server implements the HTTP server, middleware, and request handlers for the application.
package server

import (
	"net/http"

	"github.com/woozymasta/fivestat/internal/cache"
	"github.com/woozymasta/fivestat/internal/config"
	"github.com/woozymasta/fivestat/internal/enrich"
	"github.com/woozymasta/fivestat/internal/syncer"
)

// New creates a Server instance wired to the snapshot cache, sync engine and
// player enricher.
func New(store *cache.Snapshot, engine *syncer.Engine, enricher *enrich.Enricher, cfg *config.Config) *Server {
	return &Server{
		cache:          store,
		engine:         engine,
		enricher:       enricher,
		corsOrigin:     cfg.Server.CORSOrigin,
		trustProxy:     cfg.Server.TrustProxy,
		hardLimitCount: cfg.RateLimit.Count,
		hardLimitWin:   cfg.RateLimit.Window,
	}
}

// Run configures the HTTP routes and returns the main handler.
func (s *Server) Run() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /serverdetail", s.RateLimitMiddleware(s.AvailabilityMiddleware(http.HandlerFunc(s.handleServerDetail))))
	mux.Handle("GET /playerlist", s.RateLimitMiddleware(s.AvailabilityMiddleware(http.HandlerFunc(s.handlePlayerList))))
	mux.Handle("GET /version", http.HandlerFunc(handleVersion))
	mux.Handle("GET /", http.HandlerFunc(handleRoot))

	return s.LoggingMiddleware(s.CORSMiddleware(RecoverMiddleware(mux)))
}

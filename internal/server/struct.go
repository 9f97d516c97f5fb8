package server

import (
	"time"

	"github.com/woozymasta/fivestat/internal/cache"
	"github.com/woozymasta/fivestat/internal/enrich"
	"github.com/woozymasta/fivestat/internal/syncer"
)

// Server holds the dependencies, configuration, and runtime state required
// to handle HTTP requests.
type Server struct {
	// cache is the single-slot snapshot store populated by the sync engine.
	cache *cache.Snapshot

	// engine owns the circuit breaker; handlers only read its state.
	engine *syncer.Engine

	// enricher resolves the cached player list into enriched players at
	// request time.
	enricher *enrich.Enricher

	// corsOrigin is the Access-Control-Allow-Origin value sent on every
	// response. Empty disables CORS headers.
	corsOrigin string

	// hardLimitCount is the maximum number of requests allowed per IP
	// address within the hardLimitWin duration.
	hardLimitCount int

	// hardLimitWin is the time window duration for the per-IP rate limiter.
	hardLimitWin time.Duration

	// trustProxy indicates whether the server should trust headers like
	// X-Forwarded-For or CF-Connecting-IP when determining the client's
	// real IP address.
	trustProxy bool
}

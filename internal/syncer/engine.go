// Package syncer runs the periodic upstream synchronization loop and owns the
// failure-count circuit breaker.
package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/woozymasta/fivestat/internal/cache"
	"github.com/woozymasta/fivestat/internal/fivem"
	"github.com/woozymasta/fivestat/internal/imageprobe"
	"github.com/woozymasta/fivestat/internal/models"
)

// Fetcher retrieves the current upstream server payload.
type Fetcher interface {
	Fetch(ctx context.Context) (*fivem.Payload, error)
}

// Circuit is a read-only view of the breaker state. Open is true exactly
// when Failures has reached the configured threshold.
type Circuit struct {
	Failures int
	Open     bool
}

// Options configures an Engine.
type Options struct {
	// Interval is the sync period. The first sync fires immediately on
	// Start, not after the first interval.
	Interval time.Duration

	// FailureThreshold is the consecutive-failure count at which the
	// circuit opens.
	FailureThreshold int

	// ProbeTimeout bounds the banner image dimension probe.
	ProbeTimeout time.Duration
}

// Engine periodically pulls upstream state, normalizes it into a snapshot
// and publishes it to the cache. It is the sole mutator of the circuit
// breaker state; handlers read it through Circuit().
type Engine struct {
	fetcher Fetcher
	probe   imageprobe.Prober
	cache   *cache.Snapshot
	cron    *cron.Cron
	opts    Options

	mu       sync.Mutex
	failures int
	open     bool
}

// New creates an Engine. probe may be nil to skip banner measurement.
func New(fetcher Fetcher, probe imageprobe.Prober, store *cache.Snapshot, opts Options) *Engine {
	return &Engine{
		fetcher: fetcher,
		probe:   probe,
		cache:   store,
		cron:    cron.New(),
		opts:    opts,
	}
}

// Start runs the first sync immediately and schedules the periodic cycle.
func (e *Engine) Start() error {
	if _, err := e.cron.AddFunc("@every "+e.opts.Interval.String(), func() {
		e.SyncNow(context.Background())
	}); err != nil {
		return err
	}

	go e.SyncNow(context.Background())
	e.cron.Start()

	return nil
}

// Stop halts the schedule. An in-flight sync is not awaited; it finishes on
// its own and its result is simply discarded with the process.
func (e *Engine) Stop() {
	e.cron.Stop()
}

// Circuit returns the current breaker state.
func (e *Engine) Circuit() Circuit {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Circuit{Failures: e.failures, Open: e.open}
}

// SyncNow performs one fetch-normalize-publish cycle. Start schedules it;
// it can also be driven directly for a manual refresh.
func (e *Engine) SyncNow(ctx context.Context) {
	payload, err := e.fetcher.Fetch(ctx)
	if err != nil {
		e.recordFailure(err)
		return
	}

	e.resetCircuit()
	e.cache.Set(e.buildDetail(ctx, payload))
	log.Info().
		Int("players", payload.Clients).
		Msg("Server data synchronized")
}

// buildDetail normalizes the raw payload into the cached snapshot, making
// every optional-field default explicit in one place.
func (e *Engine) buildDetail(ctx context.Context, payload *fivem.Payload) models.ServerDetail {
	detail := models.ServerDetail{
		TotalPlayers: payload.Clients,
		MaxPlayers:   payload.MaxClients,
		Hostname:     payload.Hostname,
		Discord:      payload.Vars.Discord,
		LogoFivem:    payload.OwnerAvatar,
		Banner: models.Banner{
			URL:  payload.Vars.BannerConnecting,
			Size: "Unknown",
		},
		Players: payload.Players,
	}

	if detail.Hostname == "" {
		detail.Hostname = "Unknown"
	}
	if detail.Players == nil {
		detail.Players = []models.RawPlayer{}
	}

	if e.probe != nil && detail.Banner.URL != "" {
		probeCtx, cancel := context.WithTimeout(ctx, e.opts.ProbeTimeout)
		defer cancel()

		dims, err := e.probe.Probe(probeCtx, detail.Banner.URL)
		if err != nil {
			log.Warn().Err(err).Str("url", detail.Banner.URL).Msg("Banner probe failed")
		} else {
			detail.Banner.Size = dims.String()
		}
	}

	return detail
}

// recordFailure advances the breaker. The cached snapshot is deliberately
// left alone: stale-but-present data beats no data, and the cache TTL
// governs its eventual expiry on its own.
func (e *Engine) recordFailure(err error) {
	e.mu.Lock()
	e.failures++
	failures := e.failures
	if failures >= e.opts.FailureThreshold {
		e.open = true
	}
	open := e.open
	e.mu.Unlock()

	log.Error().
		Err(err).
		Int("failures", failures).
		Msg("Sync failed")

	if open {
		log.Error().
			Int("failures", failures).
			Msg("External server considered down")
	}
}

// resetCircuit closes the breaker after a fully successful sync.
func (e *Engine) resetCircuit() {
	e.mu.Lock()
	e.failures = 0
	e.open = false
	e.mu.Unlock()
}

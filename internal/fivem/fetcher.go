// Package fivem fetches live server state from the FiveM servers frontend API.
package fivem

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/fivestat/internal/config"
	"github.com/woozymasta/fivestat/internal/models"
)

// Browser-like header set expected by the servers frontend.
const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36"
	acceptLanguage = "en-US,en;q=0.9"
	originHeader   = "https://servers.fivem.net"
	refererHeader  = "https://servers.fivem.net/"
)

// Vars holds the subset of server convars the aggregator cares about.
type Vars struct {
	BannerConnecting string `json:"banner_connecting"`
	Discord          string `json:"Discord"`
}

// Payload is the raw upstream server state under the response envelope.
type Payload struct {
	Hostname    string             `json:"hostname"`
	OwnerAvatar string             `json:"ownerAvatar"`
	Vars        Vars               `json:"vars"`
	Players     []models.RawPlayer `json:"players"`
	Clients     int                `json:"clients"`
	MaxClients  int                `json:"sv_maxclients"`
}

// envelope is the upstream response wrapper.
type envelope struct {
	Data Payload `json:"Data"`
}

// ExhaustedError reports that every fetch attempt failed. LastStatus is the
// last observed HTTP status, or 0 when no attempt got a response at all.
type ExhaustedError struct {
	Err        error
	Attempts   int
	LastStatus int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("fivem: fetch failed after %d attempts (last status %d)", e.Attempts, e.LastStatus)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

// Client queries the FiveM servers frontend with bounded retries.
type Client struct {
	http       *http.Client
	url        string
	attempts   int
	retryDelay time.Duration
}

// New creates a Client for the configured server code. The HTTP timeout
// applies per attempt, independent of the retry pauses.
func New(cfg config.Upstream) *Client {
	return &Client{
		http:       &http.Client{Timeout: cfg.Timeout},
		url:        cfg.URL + cfg.ServerCode,
		attempts:   cfg.Attempts,
		retryDelay: cfg.RetryDelay,
	}
}

// Fetch retrieves the current server payload. Only a 200 response counts as
// success; any other status or a transport error is retried after a fixed
// pause, up to the configured attempt budget. When the budget is spent it
// returns an *ExhaustedError carrying the last observed status.
func (c *Client) Fetch(ctx context.Context) (*Payload, error) {
	var (
		lastStatus int
		lastErr    error
	)

	for attempt := 1; attempt <= c.attempts; attempt++ {
		payload, status, err := c.attempt(ctx)
		if err == nil {
			return payload, nil
		}

		if status != 0 {
			lastStatus = status
		}
		lastErr = err

		log.Debug().
			Err(err).
			Int("attempt", attempt).
			Int("status", status).
			Msg("Fetch attempt failed")

		// No pause after the final attempt
		if attempt == c.attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, &ExhaustedError{Err: ctx.Err(), Attempts: attempt, LastStatus: lastStatus}
		case <-time.After(c.retryDelay):
		}
	}

	return nil, &ExhaustedError{Err: lastErr, Attempts: c.attempts, LastStatus: lastStatus}
}

// attempt performs a single upstream request. The returned status is 0 when
// the request failed before receiving a response.
func (c *Client) attempt(ctx context.Context) (*Payload, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("fivem: create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", acceptLanguage)
	req.Header.Set("Origin", originHeader)
	req.Header.Set("Referer", refererHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fivem: do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("fivem: unexpected status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("fivem: decode response: %w", err)
	}

	return &env.Data, resp.StatusCode, nil
}

// Package discord resolves Discord user profiles through a public lookup service.
package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/woozymasta/fivestat/internal/config"
)

// Profile is a normalized Discord user profile.
type Profile struct {
	ID        string
	Username  string
	AvatarURL string
}

// Lookuper resolves a Discord user ID into a profile. A nil result with a
// nil error means the profile could not be resolved and the caller should
// degrade, not fail.
type Lookuper interface {
	Lookup(ctx context.Context, discordID string) (*Profile, error)
}

// lookupResponse is the lookup service response shape.
type lookupResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   *struct {
		ID string `json:"id"`
	} `json:"avatar"`
}

// Client queries the Discord lookup service. A single attempt per call, no
// retries: one player's failed lookup must never hold up the rest of the
// player list.
type Client struct {
	http        *http.Client
	url         string
	avatarCDN   string
	placeholder string
}

// New creates a lookup client from the configured service endpoints.
func New(cfg config.Lookup) *Client {
	return &Client{
		http:        &http.Client{Timeout: cfg.Timeout},
		url:         cfg.URL,
		avatarCDN:   cfg.AvatarCDN,
		placeholder: cfg.PlaceholderAvatar,
	}
}

// Lookup fetches and normalizes the profile for a Discord user ID. Transport
// errors, non-200 statuses and malformed bodies all come back as errors; the
// enricher absorbs them into a nil profile for that player.
func (c *Client) Lookup(ctx context.Context, discordID string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+discordID, nil)
	if err != nil {
		return nil, fmt.Errorf("discord: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discord: do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord: unexpected status %d", resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("discord: decode response: %w", err)
	}

	if body.ID == "" {
		return nil, fmt.Errorf("discord: empty profile for id %s", discordID)
	}

	avatar := c.placeholder
	if body.Avatar != nil && body.Avatar.ID != "" {
		avatar = c.avatarCDN + body.ID + "/" + body.Avatar.ID
	}

	return &Profile{
		ID:        body.ID,
		Username:  body.Username,
		AvatarURL: avatar,
	}, nil
}

var _ Lookuper = (*Client)(nil)

// Package enrich turns raw upstream player entries into enriched players with
// Steam profile URLs, Discord profiles and country codes.
package enrich

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/fivestat/internal/discord"
	"github.com/woozymasta/fivestat/internal/identity"
	"github.com/woozymasta/fivestat/internal/models"
)

// CountryResolver resolves an IP address to an ISO country code, "" when unknown.
type CountryResolver interface {
	CountryCode(ip string) string
}

// Enricher fans out per-player profile lookups. Each player is processed
// independently; a failed lookup degrades that player's fields to null and
// never aborts the batch.
type Enricher struct {
	lookup      discord.Lookuper
	geo         CountryResolver
	concurrency int
}

// New creates an Enricher. geo may be nil when country resolution is
// disabled. concurrency bounds simultaneous per-player lookups, 0 means
// unbounded (one goroutine per player, matching the upstream behavior).
func New(lookup discord.Lookuper, geo CountryResolver, concurrency int) *Enricher {
	return &Enricher{
		lookup:      lookup,
		geo:         geo,
		concurrency: concurrency,
	}
}

// Enrich resolves all players concurrently and joins when every one is done.
// The result preserves input order, one output per input.
func (e *Enricher) Enrich(ctx context.Context, players []models.RawPlayer) []models.EnrichedPlayer {
	out := make([]models.EnrichedPlayer, len(players))

	var sem chan struct{}
	if e.concurrency > 0 {
		sem = make(chan struct{}, e.concurrency)
	}

	var wg sync.WaitGroup
	for i, player := range players {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			out[i] = e.enrichOne(ctx, player)
		}()
	}
	wg.Wait()

	return out
}

// enrichOne builds the enriched view of a single player.
func (e *Enricher) enrichOne(ctx context.Context, player models.RawPlayer) models.EnrichedPlayer {
	enriched := models.EnrichedPlayer{
		ID:   player.ID,
		Name: player.Name,
		Ping: player.Ping,
	}
	if enriched.Name == "" {
		enriched.Name = "Unknown"
	}

	if url, ok := identity.SteamProfileURL(player.Identifiers); ok {
		enriched.SteamProfileURL = &url
	}

	if discordID, ok := identity.DiscordID(player.Identifiers); ok {
		profile, err := e.lookup.Lookup(ctx, discordID)
		if err != nil {
			log.Warn().
				Err(err).
				Int("player", player.ID).
				Str("discord_id", discordID).
				Msg("Discord lookup failed")
		} else if profile != nil {
			enriched.DiscordDetails = &models.DiscordDetails{
				DiscordID: profile.ID,
				Username:  profile.Username,
				AvatarURL: profile.AvatarURL,
			}
		}
	}

	if e.geo != nil {
		if ip, ok := identity.PlayerIP(player.Identifiers); ok {
			enriched.Country = e.geo.CountryCode(ip)
		}
	}

	return enriched
}

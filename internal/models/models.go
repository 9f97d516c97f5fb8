// Package models defines the data structures used for API responses and the cached server snapshot.
package models

// Banner describes the connecting-banner image advertised by the server.
type Banner struct {
	URL  string `json:"url"`
	Size string `json:"size"`
}

// ServerDetail is a snapshot of the upstream server state at the last
// successful sync. It is built once per sync cycle and replaced wholesale,
// never mutated in place. Players are served through /playerlist only and
// are excluded from the /serverdetail JSON.
type ServerDetail struct {
	Hostname     string      `json:"hostname"`
	Discord      string      `json:"discord"`
	LogoFivem    string      `json:"logofivem"`
	Banner       Banner      `json:"banner"`
	Players      []RawPlayer `json:"-"`
	TotalPlayers int         `json:"totalplayer"`
	MaxPlayers   int         `json:"maxplayer"`
}

// RawPlayer is a player entry exactly as received from the upstream status
// API. Identifiers are opaque tagged strings like "steam:110000103fa1d54".
type RawPlayer struct {
	Name        string   `json:"name"`
	Identifiers []string `json:"identifiers"`
	ID          int      `json:"id"`
	Ping        int      `json:"ping"`
}

// DiscordDetails is a normalized Discord profile attached to an enriched player.
type DiscordDetails struct {
	DiscordID string `json:"discordId"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

// EnrichedPlayer is the request-time view of a player, derived from a
// RawPlayer plus external profile lookups. It is never cached.
type EnrichedPlayer struct {
	Name            string          `json:"name"`
	SteamProfileURL *string         `json:"steamProfileUrl"`
	DiscordDetails  *DiscordDetails `json:"discordDetails"`
	Country         string          `json:"country,omitempty"`
	ID              int             `json:"id"`
	Ping            int             `json:"ping"`
}

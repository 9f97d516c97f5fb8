// Package config handles the parsing and validation of application configuration
// from command-line arguments and environment variables.
package config

import (
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/woozymasta/fivestat/internal/logger"
	"github.com/woozymasta/fivestat/internal/vars"
)

// Config represents the complete application flags configuration.
type Config struct {
	// betteralign:ignore

	Server    Server        `group:"Server Options" env-namespace:"FIVESTAT"`
	Upstream  Upstream      `group:"Upstream Options" namespace:"upstream" env-namespace:"FIVESTAT_UPSTREAM"`
	Sync      Sync          `group:"Sync Options" namespace:"sync" env-namespace:"FIVESTAT_SYNC"`
	Cache     Cache         `group:"Cache Options" namespace:"cache" env-namespace:"FIVESTAT_CACHE"`
	Lookup    Lookup        `group:"Discord Lookup Options" namespace:"lookup" env-namespace:"FIVESTAT_LOOKUP"`
	GeoIP     GeoIP         `group:"GeoIP Options" namespace:"geoip" env-namespace:"FIVESTAT_GEOIP"`
	RateLimit RateLimit     `group:"Rate Limit Options" namespace:"rate-limit" env-namespace:"FIVESTAT_RATE_LIMIT"`
	Logger    logger.Config `group:"Logger Options" namespace:"log" env-namespace:"FIVESTAT_LOG"`

	Version bool `short:"v" long:"version" description:"Print version and build info"`
}

// Server holds web server configuration.
type Server struct {
	// betteralign:ignore

	Address    string `short:"l" long:"address" env:"LISTEN_ADDRESS" description:"Server listen address" default:":3333"`
	CORSOrigin string `long:"cors-origin" env:"CORS_ORIGIN" description:"Access-Control-Allow-Origin value" default:"*"`
	TrustProxy bool   `long:"trust-proxy" env:"TRUST_PROXY" description:"Trust X-Forwarded-For headers"`
}

// Upstream holds FiveM servers frontend API configuration.
type Upstream struct {
	// betteralign:ignore

	URL        string        `long:"url" env:"URL" description:"Base URL of the servers frontend single-server endpoint" default:"https://servers-frontend.fivem.net/api/servers/single/"`
	ServerCode string        `short:"s" long:"server-code" env:"SERVER_CODE" description:"cfx.re join code of the tracked server" default:"4ylb3o"`
	Timeout    time.Duration `long:"timeout" env:"TIMEOUT" description:"Per-request timeout" default:"5s"`
	Attempts   int           `long:"attempts" env:"ATTEMPTS" description:"Max fetch attempts per sync cycle" default:"3"`
	RetryDelay time.Duration `long:"retry-delay" env:"RETRY_DELAY" description:"Fixed pause between fetch attempts" default:"1s"`
}

// Sync holds background synchronization configuration.
type Sync struct {
	// betteralign:ignore

	Interval         time.Duration `long:"interval" env:"INTERVAL" description:"Sync period" default:"30s"`
	FailureThreshold int           `long:"failure-threshold" env:"FAILURE_THRESHOLD" description:"Consecutive failures before the circuit opens" default:"10"`
	ProbeTimeout     time.Duration `long:"probe-timeout" env:"PROBE_TIMEOUT" description:"Banner image probe timeout" default:"10s"`
}

// Cache holds snapshot cache configuration.
type Cache struct {
	// betteralign:ignore

	TTL time.Duration `long:"ttl" env:"TTL" description:"Snapshot time to live" default:"60s"`
}

// Lookup holds Discord profile lookup configuration.
type Lookup struct {
	// betteralign:ignore

	URL               string        `long:"url" env:"URL" description:"Base URL of the Discord lookup service" default:"https://discordlookup.mesalytic.moe/v1/user/"`
	AvatarCDN         string        `long:"avatar-cdn" env:"AVATAR_CDN" description:"Base URL of the Discord avatar CDN" default:"https://cdn.discordapp.com/avatars/"`
	PlaceholderAvatar string        `long:"placeholder-avatar" env:"PLACEHOLDER_AVATAR" description:"Avatar URL used when the profile has none" default:"https://via.placeholder.com/64"`
	Timeout           time.Duration `long:"timeout" env:"TIMEOUT" description:"Per-lookup timeout" default:"5s"`
	Concurrency       int           `long:"concurrency" env:"CONCURRENCY" description:"Max concurrent lookups per request, 0 for unbounded" default:"0"`
}

// GeoIP holds MaxMind GeoIP configuration for player country resolution.
type GeoIP struct {
	// betteralign:ignore

	Path     string        `short:"g" long:"path" env:"PATH" description:"Path to MMDB file" default:"fivestat.mmdb"`
	URL      string        `long:"url" env:"URL" description:"URL to download MMDB" default:"https://git.io/GeoLite2-Country.mmdb"`
	Interval time.Duration `long:"interval" env:"INTERVAL" description:"Update interval check" default:"24h"`
	Disable  bool          `long:"disable" env:"DISABLE" description:"Disable player country resolution"`
}

// RateLimit holds API rate limiting configuration.
type RateLimit struct {
	// betteralign:ignore

	Count  int           `long:"count" env:"COUNT" description:"Per-IP limit: requests count" default:"60"`
	Window time.Duration `long:"window" env:"WINDOW" description:"Per-IP limit: window duration" default:"1m"`
}

// Parse reads the configuration from flags and environment variables.
// It terminates the application if the configuration is invalid or if the help flag is invoked.
func Parse() *Config {
	var cfg Config
	parser := flags.NewParser(&cfg, flags.Default)
	parser.NamespaceDelimiter = "-"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}

	if cfg.Version {
		vars.Print()
		os.Exit(0)
	}

	return &cfg
}

// Package geoip resolves player connection addresses to country codes using
// a MaxMind GeoLite2 database, downloading and refreshing it as needed.
package geoip

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/oschwald/geoip2-golang"
	"github.com/rs/zerolog/log"
	"github.com/woozymasta/fivestat/internal/config"
)

// Provider wraps the GeoIP2 database reader to provide country lookup functionality.
type Provider struct {
	db *geoip2.Reader
}

// Setup ensures a usable database per the configuration and opens it.
// Returns nil (and no error) when GeoIP is disabled or the database cannot
// be obtained; country resolution is best-effort and never blocks startup.
func Setup(cfg config.GeoIP) *Provider {
	if cfg.Disable {
		log.Info().Msg("GeoIP country resolution disabled")
		return nil
	}

	if err := ensureDB(cfg.Path, cfg.URL, cfg.Interval); err != nil {
		log.Error().Err(err).Msg("Failed to download GeoIP database")
	}

	provider, err := Open(cfg.Path)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open GeoIP database, country detection disabled")
		return nil
	}

	return provider
}

// Open initializes the GeoIP database reader from a specific file path.
func Open(path string) (*Provider, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}

	return &Provider{db: db}, nil
}

// Close closes the underlying GeoIP database reader.
func (p *Provider) Close() error {
	return p.db.Close()
}

// CountryCode looks up the ISO country code (e.g., "US", "DE") for an IP
// address string. Returns "" if the IP is invalid or unknown.
func (p *Provider) CountryCode(ipStr string) string {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return ""
	}

	record, err := p.db.Country(ip)
	if err != nil {
		return ""
	}

	return record.Country.IsoCode
}

// ensureDB checks that the database file exists and is recent enough,
// downloading a new copy when it is missing or older than maxAge.
func ensureDB(path, url string, maxAge time.Duration) error {
	info, err := os.Stat(path)

	switch {
	case err == nil:
		if time.Since(info.ModTime()) < maxAge {
			log.Info().Str("path", path).Msg("GeoIP database is up to date")
			return nil
		}
		log.Info().Str("path", path).Msg("GeoIP database is outdated, updating...")
	case os.IsNotExist(err):
		log.Info().Str("path", path).Msg("GeoIP database missing, downloading...")
	default:
		return err
	}

	return downloadFile(path, url)
}

// downloadFile downloads a file from a URL to a local path using a temporary
// file to ensure atomic writes.
func downloadFile(path, url string) error {
	tmpPath := path + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	resp, err := http.Get(url) //nolint:gosec
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geoip: download status %d", resp.StatusCode)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		return err
	}

	if err := out.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}

// Package cache holds the latest server snapshot with a bounded time to live.
package cache

import (
	"time"

	"github.com/maypok86/otter"
	"github.com/woozymasta/fivestat/internal/models"
)

// snapshotKey is the single logical key this cache serves.
const snapshotKey = "serverDetail"

// Snapshot is a single-slot TTL cache for the latest ServerDetail.
// Writes replace the whole value; reads after expiry are absent.
type Snapshot struct {
	cache otter.Cache[string, models.ServerDetail]
}

// New creates a snapshot cache with the given TTL. The capacity only needs
// to fit one logical record, but otter wants a little headroom.
func New(ttl time.Duration) (*Snapshot, error) {
	c, err := otter.MustBuilder[string, models.ServerDetail](16).
		Cost(func(_ string, _ models.ServerDetail) uint32 { return 1 }).
		WithTTL(ttl).
		Build()
	if err != nil {
		return nil, err
	}

	return &Snapshot{cache: c}, nil
}

// Set stores the snapshot with a fresh TTL, unconditionally overwriting the
// previous one.
func (s *Snapshot) Set(detail models.ServerDetail) {
	s.cache.Set(snapshotKey, detail)
}

// Get returns the current snapshot, or false when none was stored yet or the
// stored one has expired.
func (s *Snapshot) Get() (models.ServerDetail, bool) {
	return s.cache.Get(snapshotKey)
}

// Close releases resources held by the underlying cache.
func (s *Snapshot) Close() {
	s.cache.Close()
}

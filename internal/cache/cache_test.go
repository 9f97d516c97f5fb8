package cache

import (
	"testing"
	"time"

	"github.com/woozymasta/fivestat/internal/models"
)

func TestSnapshotSetGet(t *testing.T) {
	s, err := New(time.Minute)
	if err != nil {
		t.Fatalf("create cache: %v", err)
	}
	defer s.Close()

	if _, ok := s.Get(); ok {
		t.Fatal("empty cache should report absent")
	}

	s.Set(models.ServerDetail{Hostname: "first", TotalPlayers: 1})
	s.Set(models.ServerDetail{Hostname: "second", TotalPlayers: 2})

	detail, ok := s.Get()
	if !ok {
		t.Fatal("expected a snapshot")
	}
	if detail.Hostname != "second" || detail.TotalPlayers != 2 {
		t.Errorf("last write must win, got %+v", detail)
	}
}

func TestSnapshotExpires(t *testing.T) {
	s, err := New(200 * time.Millisecond)
	if err != nil {
		t.Fatalf("create cache: %v", err)
	}
	defer s.Close()

	s.Set(models.ServerDetail{Hostname: "ttl"})

	if _, ok := s.Get(); !ok {
		t.Fatal("snapshot should be present before expiry")
	}

	time.Sleep(300 * time.Millisecond)

	if _, ok := s.Get(); ok {
		t.Error("snapshot should be absent after expiry")
	}
}

func TestSnapshotSetRefreshesTTL(t *testing.T) {
	s, err := New(200 * time.Millisecond)
	if err != nil {
		t.Fatalf("create cache: %v", err)
	}
	defer s.Close()

	s.Set(models.ServerDetail{Hostname: "a"})
	time.Sleep(120 * time.Millisecond)
	s.Set(models.ServerDetail{Hostname: "b"})
	time.Sleep(120 * time.Millisecond)

	// 240ms after the first write but only 120ms after the second
	detail, ok := s.Get()
	if !ok {
		t.Fatal("rewrite should have refreshed the TTL")
	}
	if detail.Hostname != "b" {
		t.Errorf("Hostname = %q, want %q", detail.Hostname, "b")
	}
}

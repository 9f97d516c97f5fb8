package discord

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/woozymasta/fivestat/internal/config"
)

func testClient(srvURL string) *Client {
	return New(config.Lookup{
		URL:               srvURL + "/v1/user/",
		AvatarCDN:         "https://cdn.example.com/avatars/",
		PlaceholderAvatar: "https://via.placeholder.com/64",
		Timeout:           time.Second,
	})
}

func TestLookupNormalizesProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/user/123456789" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":"123456789","username":"player_one","avatar":{"id":"abc123"}}`))
	}))
	defer srv.Close()

	profile, err := testClient(srv.URL).Lookup(context.Background(), "123456789")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if profile.ID != "123456789" || profile.Username != "player_one" {
		t.Errorf("unexpected profile: %+v", profile)
	}
	if want := "https://cdn.example.com/avatars/123456789/abc123"; profile.AvatarURL != want {
		t.Errorf("AvatarURL = %q, want %q", profile.AvatarURL, want)
	}
}

func TestLookupAvatarPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"42","username":"no_avatar","avatar":null}`))
	}))
	defer srv.Close()

	profile, err := testClient(srv.URL).Lookup(context.Background(), "42")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if profile.AvatarURL != "https://via.placeholder.com/64" {
		t.Errorf("AvatarURL = %q, want the placeholder", profile.AvatarURL)
	}
}

func TestLookupFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/user/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/v1/user/broken":
			_, _ = w.Write([]byte(`{not json`))
		case "/v1/user/empty":
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	for _, id := range []string{"missing", "broken", "empty"} {
		if _, err := client.Lookup(context.Background(), id); err == nil {
			t.Errorf("Lookup(%q) should fail", id)
		}
	}
}

func TestLookupTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	if _, err := testClient(srv.URL).Lookup(context.Background(), "1"); err == nil {
		t.Error("Lookup against a closed server should fail")
	}
}

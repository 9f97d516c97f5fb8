package fivem

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/woozymasta/fivestat/internal/config"
)

func testConfig(url string) config.Upstream {
	return config.Upstream{
		URL:        url + "/api/servers/single/",
		ServerCode: "test01",
		Timeout:    time.Second,
		Attempts:   3,
		RetryDelay: 20 * time.Millisecond,
	}
}

func TestFetchSuccessOnSecondAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"Data":{"clients":12,"sv_maxclients":64,"hostname":"My Server"}}`))
	}))
	defer srv.Close()

	payload, err := New(testConfig(srv.URL)).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("attempts = %d, want 2 (success must stop the retry loop)", got)
	}
	if payload.Clients != 12 || payload.MaxClients != 64 || payload.Hostname != "My Server" {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestFetchRetriesNon200AndExhausts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		// Explicit non-2xx below 500 is still retryable, not a hard stop
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(testConfig(srv.URL)).Fetch(context.Background())
	if err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error is %T, want *ExhaustedError", err)
	}
	if exhausted.LastStatus != http.StatusNotFound {
		t.Errorf("LastStatus = %d, want 404", exhausted.LastStatus)
	}
	if exhausted.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", exhausted.Attempts)
	}
}

func TestFetchTransportErrorExhausts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	_, err := New(testConfig(srv.URL)).Fetch(context.Background())

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error is %T, want *ExhaustedError", err)
	}
	if exhausted.LastStatus != 0 {
		t.Errorf("LastStatus = %d, want 0 when no response was received", exhausted.LastStatus)
	}
}

func TestFetchWaitsBetweenAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	start := time.Now()
	_, err := New(testConfig(srv.URL)).Fetch(context.Background())
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected an error")
	}
	// 3 attempts mean exactly 2 pauses, with no pause after the final one
	if elapsed < 40*time.Millisecond {
		t.Errorf("elapsed = %v, want at least two retry delays", elapsed)
	}
	if elapsed > 500*time.Millisecond {
		t.Errorf("elapsed = %v, a pause after the final attempt is not allowed", elapsed)
	}
}

func TestFetchSendsBrowserHeaders(t *testing.T) {
	var gotUA, gotOrigin, gotReferer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotOrigin = r.Header.Get("Origin")
		gotReferer = r.Header.Get("Referer")
		_, _ = w.Write([]byte(`{"Data":{}}`))
	}))
	defer srv.Close()

	if _, err := New(testConfig(srv.URL)).Fetch(context.Background()); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if gotUA != userAgent {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotOrigin != originHeader || gotReferer != refererHeader {
		t.Errorf("Origin = %q, Referer = %q", gotOrigin, gotReferer)
	}
}

package imageprobe

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	return buf.Bytes()
}

func TestProbeReturnsDimensions(t *testing.T) {
	img := pngBytes(t, 320, 180)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(img)
	}))
	defer srv.Close()

	dims, err := New(time.Second).Probe(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if dims.Width != 320 || dims.Height != 180 {
		t.Errorf("dims = %+v, want 320x180", dims)
	}
	if dims.String() != "320x180" {
		t.Errorf("String() = %q, want 320x180", dims.String())
	}
}

func TestProbeIgnoresBadCertificate(t *testing.T) {
	img := pngBytes(t, 8, 8)
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(img)
	}))
	defer srv.Close()

	// httptest TLS uses a self-signed cert; the probe must not care
	dims, err := New(time.Second).Probe(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("probe over self-signed TLS failed: %v", err)
	}
	if dims.Width != 8 || dims.Height != 8 {
		t.Errorf("dims = %+v, want 8x8", dims)
	}
}

func TestProbeFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			_, _ = w.Write([]byte("not an image"))
		}
	}))
	defer srv.Close()

	client := New(time.Second)
	if _, err := client.Probe(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("probe of a 404 should fail")
	}
	if _, err := client.Probe(context.Background(), srv.URL+"/garbage"); err == nil {
		t.Error("probe of a non-image body should fail")
	}
}

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
	"github.com/woozymasta/fivestat/internal/vars"
)

// handleRoot is the liveness endpoint.
func handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "API OK"})
}

// handleVersion returns build metadata.
func handleVersion(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, vars.Info())
}

// handleServerDetail serves the cached server snapshot without the player
// list. Responses carry an ETag derived from the snapshot body, so pollers
// holding the current one get a 304.
func (s *Server) handleServerDetail(w http.ResponseWriter, r *http.Request) {
	detail, ok := s.cache.Get()
	if !ok {
		respondError(w, http.StatusServiceUnavailable, "data not ready yet, try again later")
		return
	}

	body, err := json.Marshal(detail)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode server detail")
		respondError(w, http.StatusInternalServerError, "encoding error")
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(append(body, '\n'))
}

// handlePlayerList enriches the cached player list and serves it.
func (s *Server) handlePlayerList(w http.ResponseWriter, r *http.Request) {
	detail, ok := s.cache.Get()
	if !ok {
		respondError(w, http.StatusServiceUnavailable, "data not ready yet, try again later")
		return
	}

	players := s.enricher.Enrich(r.Context(), detail.Players)

	respondJSON(w, http.StatusOK, map[string]any{"playerlist": players})
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		http.Error(w, "encoding error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// respondError writes a JSON error payload with the given status.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

package api

import (
	"net/http"

	"github.com/vytor/wordflash/internal/logger"
)

// handleHealth returns a liveness probe - always returns 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady returns a readiness probe. Returns 200 when the progress
// storage accepts writes, 503 otherwise.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.DeckService.Ready(r.Context()); err != nil {
		logger.FromContext(r.Context()).Warn("readiness check failed - storage: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Storage unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}

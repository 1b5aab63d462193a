package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const requestTimeout = 30 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(timeoutMiddleware(requestTimeout))

		r.Get("/stats", s.handleStats)
		r.Get("/words", s.handleWords)
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleUpdateSettings)
		r.Post("/import", s.handleImport)
		// Reads from the server's disk, limited to ImportRoot.
		r.Post("/import/file", s.handleImportFile)
		r.Post("/progress/reload", s.handleReload)
		r.Post("/backup", s.handleBackup)

		r.Route("/sessions/{mode}", func(r chi.Router) {
			r.Post("/", s.handleStartSession)
			r.Get("/", s.handleSessionPrompt)
			r.Delete("/", s.handleAbandonSession)
			r.Get("/stats", s.handleSessionStats)
			r.Post("/submit", s.handleSubmit)
			r.Post("/skip", s.handleSkip)
			r.Post("/reveal", s.handleReveal)
			r.Post("/confirm", s.handleConfirm)
		})
	})
	return r
}

package api

import (
	"net/http"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/logger"
)

type answerRequest struct {
	Answer string `json:"answer"`
}

type confirmRequest struct {
	Remembered *bool `json:"remembered"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	mode, err := modeParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	prompt, err := s.DrillService.Start(r.Context(), mode)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, prompt)
}

func (s *Server) handleSessionPrompt(w http.ResponseWriter, r *http.Request) {
	mode, err := modeParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	prompt, err := s.DrillService.Prompt(r.Context(), mode)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, prompt)
}

func (s *Server) handleSessionStats(w http.ResponseWriter, r *http.Request) {
	mode, err := modeParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	stats, err := s.DrillService.Stats(r.Context(), mode)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	mode, err := modeParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.DrillService.Abandon(r.Context(), mode); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	mode, err := modeParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	fb, err := s.DrillService.Submit(r.Context(), mode, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Debug("%s answer: correct=%t, requeued=%t", mode, fb.Correct, fb.Requeued)
	writeJSON(w, r, http.StatusOK, fb)
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	mode, err := modeParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	fb, err := s.DrillService.Skip(r.Context(), mode)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, fb)
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	mode, err := modeParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	prompt, err := s.DrillService.Reveal(r.Context(), mode)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, prompt)
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	mode, err := modeParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req confirmRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Remembered == nil {
		handleError(w, r, errors.NewValidationError("remembered", "is required"))
		return
	}

	fb, err := s.DrillService.Confirm(r.Context(), mode, *req.Remembered)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, fb)
}

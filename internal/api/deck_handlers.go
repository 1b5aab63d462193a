package api

import (
	stderrors "errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/importer"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/worker"
)

type importFileRequest struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Label  string `json:"label"`
}

type reloadResponse struct {
	LoadedFrom string       `json:"loaded_from"`
	Stats      models.Stats `json:"stats"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.DeckService.Stats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

// handleWords previews the deck with each word's progress.
func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			handleError(w, r, errors.NewValidationError("limit", "must be a non-negative integer"))
			return
		}
		limit = n
	}

	words, err := s.DeckService.Words(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"words": words, "count": len(words)})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.DeckService.Settings(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.Settings
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := s.DeckService.UpdateSettings(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

// handleImport replaces the deck with the request body. The format comes
// from the query string, falling back to the content type.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	format, err := importFormat(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	data, err := readBody(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("import request: format=%s, %d bytes", format, len(data))
	stats, err := s.DeckService.Import(r.Context(), data, format, r.URL.Query().Get("label"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("deck imported: %d words", stats.Total)
	writeJSON(w, r, http.StatusOK, stats)
}

func importFormat(r *http.Request) (importer.Format, error) {
	if f := r.URL.Query().Get("format"); f != "" {
		return importer.ParseFormat(f)
	}
	ct := strings.ToLower(r.Header.Get("Content-Type"))
	switch {
	case strings.Contains(ct, "json"):
		return importer.FormatJSON, nil
	case strings.Contains(ct, "spreadsheetml"):
		return importer.FormatXLSX, nil
	case strings.Contains(ct, "tab-separated-values"):
		return importer.FormatTSV, nil
	case strings.Contains(ct, "csv"), strings.HasPrefix(ct, "text/plain"):
		return importer.FormatCSV, nil
	}
	return "", errors.NewBadRequestError("format query parameter is required")
}

// importPath cleans p and confines it to ImportRoot when one is set. The
// check is lexical, so symlinks placed inside the root are followed.
func (s *Server) importPath(p string) (string, error) {
	if s.ImportRoot == "" {
		return p, nil
	}
	root, err := filepath.Abs(s.ImportRoot)
	if err != nil {
		return "", errors.NewInternalError(err)
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	p = filepath.Clean(p)

	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.NewValidationError("path", "must be inside "+root)
	}
	return p, nil
}

// handleImportFile queues an import of a deck file on the server's disk.
// Paths outside ImportRoot are rejected; relative paths start at the root.
func (s *Server) handleImportFile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req importFileRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	req.Path = strings.TrimSpace(req.Path)
	if req.Path == "" {
		handleError(w, r, errors.NewValidationError("path", "is required"))
		return
	}
	path, err := s.importPath(req.Path)
	if err != nil {
		log.Warn("rejected import path %q: %v", req.Path, err)
		handleError(w, r, err)
		return
	}
	req.Path = path

	var format importer.Format
	if req.Format != "" {
		f, err := importer.ParseFormat(req.Format)
		if err != nil {
			handleError(w, r, err)
			return
		}
		format = f
	} else if _, err := importer.DetectFormat(req.Path); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.JobQueue.EnqueueImport(req.Path, format, req.Label); err != nil {
		if stderrors.Is(err, worker.ErrQueueFull) || stderrors.Is(err, worker.ErrPoolStopped) {
			log.Warn("import not queued: %v", err)
			handleError(w, r, errors.NewConflictError("import queue unavailable: "+err.Error()))
			return
		}
		handleError(w, r, err)
		return
	}

	log.Info("queued import of %s", req.Path)
	writeJSON(w, r, http.StatusAccepted, map[string]string{"status": "queued", "path": req.Path})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	src, stats, err := s.DeckService.Reload(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, reloadResponse{LoadedFrom: string(src), Stats: stats})
}

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	path, err := s.DeckService.Backup(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]string{"path": path})
}

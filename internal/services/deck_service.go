package services

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/importer"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
	"github.com/vytor/wordflash/internal/store"
)

// DeckService handles deck-wide operations: statistics, settings, imports
// and persistence maintenance.
type DeckService interface {
	Stats(ctx context.Context) (models.Stats, error)
	Words(ctx context.Context, limit int) ([]models.WordRecord, error)
	Settings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error)
	Import(ctx context.Context, data []byte, format importer.Format, label string) (models.Stats, error)
	ImportFile(ctx context.Context, path string, format importer.Format, label string) error
	Reload(ctx context.Context) (store.LoadSource, models.Stats, error)
	Backup(ctx context.Context) (string, error)
	Ready(ctx context.Context) error
}

type deckService struct {
	lib     *Library
	backups repository.BackupRepository
}

// NewDeckService creates a new DeckService. backups may be nil, which
// disables Backup.
func NewDeckService(lib *Library, backups repository.BackupRepository) DeckService {
	return &deckService{lib: lib, backups: backups}
}

func (s *deckService) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	err := s.lib.with(func(st *store.Store) error {
		stats = st.Statistics()
		return nil
	})
	return stats, err
}

// Words copies the deck in import order. A positive limit keeps the first
// limit records.
func (s *deckService) Words(ctx context.Context, limit int) ([]models.WordRecord, error) {
	var words []models.WordRecord
	err := s.lib.with(func(st *store.Store) error {
		live := st.Words()
		if limit > 0 && limit < len(live) {
			live = live[:limit]
		}
		words = make([]models.WordRecord, len(live))
		for i, w := range live {
			words[i] = *w
		}
		return nil
	})
	return words, err
}

func (s *deckService) Settings(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	err := s.lib.with(func(st *store.Store) error {
		settings = st.Settings()
		return nil
	})
	return settings, err
}

func (s *deckService) UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating settings: learn=%d, review=%d, test=%d", settings.LearnCount, settings.ReviewCount, settings.TestCount)

	var updated models.Settings
	err := s.lib.with(func(st *store.Store) error {
		if err := st.UpdateSettings(ctx, settings); err != nil {
			return err
		}
		updated = st.Settings()
		return nil
	})
	if err != nil {
		log.Warn("settings not updated: %v", err)
		return models.Settings{}, err
	}
	return updated, nil
}

func (s *deckService) Import(ctx context.Context, data []byte, format importer.Format, label string) (models.Stats, error) {
	log := logger.FromContext(ctx)
	log.Debug("importing deck: format=%s, label=%s", format, label)

	if len(data) == 0 {
		return models.Stats{}, errors.NewBadRequestError("deck payload is empty")
	}

	var stats models.Stats
	err := s.lib.with(func(st *store.Store) error {
		if err := st.Import(ctx, data, format, label); err != nil {
			return err
		}
		s.lib.replaced()
		stats = st.Statistics()
		return nil
	})
	if err != nil {
		return models.Stats{}, err
	}
	return stats, nil
}

func (s *deckService) ImportFile(ctx context.Context, path string, format importer.Format, label string) error {
	log := logger.FromContext(ctx)

	if format == "" {
		f, err := importer.DetectFormat(path)
		if err != nil {
			return err
		}
		format = f
	}
	if label == "" {
		label = filepath.Base(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("failed to read deck file %s: %v", path, err)
		return errors.NewIOError("read deck "+path, err)
	}
	stats, err := s.Import(ctx, data, format, label)
	if err != nil {
		return err
	}
	log.Info("deck %s imported: %d words", label, stats.Total)
	return nil
}

func (s *deckService) Reload(ctx context.Context) (store.LoadSource, models.Stats, error) {
	log := logger.FromContext(ctx)

	var (
		src   store.LoadSource
		stats models.Stats
	)
	err := s.lib.with(func(st *store.Store) error {
		var err error
		src, err = st.Load(ctx)
		if err != nil {
			return err
		}
		s.lib.replaced()
		stats = st.Statistics()
		return nil
	})
	if err != nil {
		log.Error("failed to reload progress: %v", err)
		return "", models.Stats{}, err
	}
	log.Info("reloaded from %s: %d words", src, stats.Total)
	return src, stats, nil
}

func (s *deckService) Backup(ctx context.Context) (string, error) {
	if s.backups == nil {
		return "", errors.NewConflictError("backups are not configured")
	}

	var snap models.Snapshot
	_ = s.lib.with(func(st *store.Store) error {
		snap = st.Snapshot()
		return nil
	})

	path, err := s.backups.Write(ctx, snap)
	if err != nil {
		return "", errors.NewIOError("write backup", err)
	}
	return path, nil
}

func (s *deckService) Ready(ctx context.Context) error {
	return s.lib.with(func(st *store.Store) error {
		if err := st.Ping(ctx); err != nil {
			return errors.NewIOError("storage ping", err)
		}
		return nil
	})
}

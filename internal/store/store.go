// Package store owns the word collection, its settings and its persistence.
//
// A Store is not safe for concurrent use; callers serialise access.
package store

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/importer"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

// Options carries the persistence paths and initial settings of a store.
type Options struct {
	// LastDeckPath is where a raw copy of the last imported deck is kept,
	// without extension. Empty disables the copy.
	LastDeckPath string
	// DefaultDeckPath is loaded when neither progress nor a last deck exist.
	DefaultDeckPath string
	// Settings used until a snapshot provides others.
	Settings models.Settings
}

// LoadSource names where Load found the data it installed.
type LoadSource string

const (
	LoadedProgress    LoadSource = "progress"
	LoadedLastDeck    LoadSource = "last_deck"
	LoadedDefaultDeck LoadSource = "default_deck"
	LoadedNothing     LoadSource = "empty"
)

type Store struct {
	repo     repository.SnapshotRepository
	opts     Options
	words    []*models.WordRecord
	settings models.Settings
	source   string
}

// New returns an empty store persisting through repo.
func New(repo repository.SnapshotRepository, opts Options) *Store {
	settings := opts.Settings
	if settings.Validate() != nil {
		settings = models.DefaultSettings()
	}
	return &Store{repo: repo, opts: opts, settings: settings}
}

// Import replaces the whole word sequence with the parsed deck, every record
// starting fresh, and persists the result. On any failure the previous
// contents stay in place.
func (s *Store) Import(ctx context.Context, data []byte, format importer.Format, label string) error {
	log := logger.FromContext(ctx).WithPrefix("store")
	log.Debug("importing deck: format=%s, label=%s, bytes=%d", format, label, len(data))

	parsed, err := importer.Parse(data, format)
	if err != nil {
		log.Warn("import rejected: %v", err)
		return err
	}
	if label == "" {
		label = string(format) + " import"
	}
	if err := s.install(ctx, parsed, label); err != nil {
		return err
	}
	log.Info("imported %d words from %s", len(parsed), label)

	s.keepLastDeck(ctx, data, format)
	return nil
}

// install swaps in a fresh word list and saves, reverting when the save fails.
func (s *Store) install(ctx context.Context, parsed []models.WordRecord, source string) error {
	words := make([]*models.WordRecord, len(parsed))
	for i := range parsed {
		w := parsed[i]
		w.ResetProgress()
		words[i] = &w
	}

	prevWords, prevSource := s.words, s.source
	s.words, s.source = words, source
	if err := s.Save(ctx); err != nil {
		s.words, s.source = prevWords, prevSource
		return err
	}
	return nil
}

// keepLastDeck copies the raw deck next to the progress file so it can seed
// the store again when no progress exists. Failures are only logged.
func (s *Store) keepLastDeck(ctx context.Context, data []byte, format importer.Format) {
	if s.opts.LastDeckPath == "" {
		return
	}
	log := logger.FromContext(ctx).WithPrefix("store")

	if err := os.MkdirAll(filepath.Dir(s.opts.LastDeckPath), 0o755); err != nil {
		log.Warn("cannot keep a copy of the deck: %v", err)
		return
	}
	for _, f := range importer.Formats {
		if f != format {
			_ = os.Remove(s.lastDeckFile(f))
		}
	}
	if err := os.WriteFile(s.lastDeckFile(format), data, 0o644); err != nil {
		log.Warn("cannot keep a copy of the deck: %v", err)
		return
	}
	log.Debug("kept deck copy at %s", s.lastDeckFile(format))
}

func (s *Store) lastDeckFile(format importer.Format) string {
	return s.opts.LastDeckPath + "." + string(format)
}

// Snapshot returns a deep copy of the store state.
func (s *Store) Snapshot() models.Snapshot {
	words := make([]models.WordRecord, len(s.words))
	for i, w := range s.words {
		words[i] = *w
	}
	return models.Snapshot{Words: words, Settings: s.settings, Source: s.source}
}

// Restore replaces the store state with a previously produced snapshot.
func (s *Store) Restore(data []byte) error {
	snap, err := models.DecodeSnapshot(data)
	if err != nil {
		return err
	}
	s.RestoreSnapshot(snap)
	return nil
}

// RestoreSnapshot installs snap, normalising every record.
func (s *Store) RestoreSnapshot(snap models.Snapshot) {
	words := make([]*models.WordRecord, 0, len(snap.Words))
	for i := range snap.Words {
		w := snap.Words[i]
		w.Normalize()
		words = append(words, &w)
	}
	settings := snap.Settings
	if settings.Validate() != nil {
		settings = models.DefaultSettings()
	}
	s.words = words
	s.settings = settings
	s.source = snap.Source
}

// Save persists the current state.
func (s *Store) Save(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.Snapshot()); err != nil {
		logger.FromContext(ctx).WithPrefix("store").Error("failed to save progress: %v", err)
		return errors.NewIOError("save progress", err)
	}
	return nil
}

// Load installs, in order of preference, the saved progress, the copy of the
// last imported deck or the default deck.
func (s *Store) Load(ctx context.Context) (LoadSource, error) {
	log := logger.FromContext(ctx).WithPrefix("store")

	snap, err := s.repo.Load(ctx)
	if err != nil {
		if errors.IsParse(err) {
			return "", err
		}
		return "", errors.NewIOError("load progress", err)
	}
	if snap != nil {
		s.RestoreSnapshot(*snap)
		log.Info("restored progress: words=%d, source=%s", len(s.words), s.source)
		return LoadedProgress, nil
	}

	for _, f := range importer.Formats {
		if s.opts.LastDeckPath == "" {
			break
		}
		path := s.lastDeckFile(f)
		ok, err := s.loadDeckFile(ctx, path, f, "")
		if err != nil {
			log.Warn("ignoring last deck %s: %v", path, err)
			continue
		}
		if ok {
			return LoadedLastDeck, nil
		}
	}

	if s.opts.DefaultDeckPath != "" {
		f, err := importer.DetectFormat(s.opts.DefaultDeckPath)
		if err != nil {
			return "", err
		}
		ok, err := s.loadDeckFile(ctx, s.opts.DefaultDeckPath, f, filepath.Base(s.opts.DefaultDeckPath))
		if err != nil {
			return "", err
		}
		if ok {
			return LoadedDefaultDeck, nil
		}
		log.Warn("default deck %s does not exist", s.opts.DefaultDeckPath)
	}

	log.Info("no progress or deck found, starting empty")
	return LoadedNothing, nil
}

// loadDeckFile installs the deck at path. It reports false when the file is
// missing.
func (s *Store) loadDeckFile(ctx context.Context, path string, format importer.Format, label string) (bool, error) {
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.NewIOError("read deck "+path, err)
	}
	parsed, err := importer.Parse(data, format)
	if err != nil {
		return false, err
	}
	if label == "" {
		label = filepath.Base(path)
	}
	if err := s.install(ctx, parsed, label); err != nil {
		return false, err
	}
	logger.FromContext(ctx).WithPrefix("store").Info("loaded %d words from %s", len(parsed), path)
	return true, nil
}

// Statistics recomputes the milestone counts from the live sequence.
func (s *Store) Statistics() models.Stats {
	st := models.ComputeStats(s.words)
	st.Source = s.source
	return st
}

// FindByWord returns the first record whose word matches case-insensitively.
// Duplicate words are not prevented, so later duplicates are unreachable here.
func (s *Store) FindByWord(word string) *models.WordRecord {
	key := models.NormalizeAnswer(word)
	if key == "" {
		return nil
	}
	for _, w := range s.words {
		if w.Key() == key {
			return w
		}
	}
	return nil
}

// Words returns the live records in import order. The records are shared
// with the store.
func (s *Store) Words() []*models.WordRecord {
	out := make([]*models.WordRecord, len(s.words))
	copy(out, s.words)
	return out
}

func (s *Store) Settings() models.Settings {
	return s.settings
}

// UpdateSettings validates and persists new session sizes.
func (s *Store) UpdateSettings(ctx context.Context, settings models.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	prev := s.settings
	s.settings = settings
	if err := s.Save(ctx); err != nil {
		s.settings = prev
		return err
	}
	return nil
}

// Source is the label of the active deck.
func (s *Store) Source() string {
	return s.source
}

// Ping checks the persistence backend.
func (s *Store) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

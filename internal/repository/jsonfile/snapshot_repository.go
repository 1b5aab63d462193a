// Package jsonfile stores snapshots as JSON documents on disk.
package jsonfile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

type snapshotRepository struct {
	path string
}

// NewSnapshotRepository stores the snapshot at path.
func NewSnapshotRepository(path string) repository.SnapshotRepository {
	return &snapshotRepository{path: path}
}

func (r *snapshotRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("snapshot_file")
	log.Debug("loading snapshot: path=%s", r.path)

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("no snapshot saved yet")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to read snapshot: %v", err)
		return nil, err
	}

	snap, err := models.DecodeSnapshot(data)
	if err != nil {
		log.Error("failed to decode snapshot: %v", err)
		return nil, err
	}
	log.Debug("snapshot loaded: words=%d", len(snap.Words))
	return &snap, nil
}

func (r *snapshotRepository) Save(ctx context.Context, snap models.Snapshot) error {
	log := logger.FromContext(ctx).WithPrefix("snapshot_file")
	log.Debug("saving snapshot: path=%s, words=%d", r.path, len(snap.Words))

	data, err := models.EncodeSnapshot(snap)
	if err != nil {
		log.Error("failed to encode snapshot: %v", err)
		return err
	}
	if err := writeFileAtomic(r.path, data); err != nil {
		log.Error("failed to write snapshot: %v", err)
		return err
	}
	return nil
}

func (r *snapshotRepository) Ping(ctx context.Context) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".ping-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// writeFileAtomic writes to a temp file in the same directory and renames it
// over path, so readers never observe a half-written snapshot.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}

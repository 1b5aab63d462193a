package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

const (
	backupPrefix     = "progress-"
	backupSuffix     = ".json"
	backupTimeLayout = "20060102T150405.000000000"
)

type backupRepository struct {
	dir  string
	keep int
	now  func() time.Time
}

// NewBackupRepository writes timestamped snapshots into dir and keeps the
// newest keep of them. keep <= 0 keeps everything.
func NewBackupRepository(dir string, keep int) repository.BackupRepository {
	return &backupRepository{dir: dir, keep: keep, now: time.Now}
}

func (r *backupRepository) Write(ctx context.Context, snap models.Snapshot) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("backup")

	data, err := models.EncodeSnapshot(snap)
	if err != nil {
		return "", err
	}
	name := backupPrefix + r.now().UTC().Format(backupTimeLayout) + backupSuffix
	path := filepath.Join(r.dir, name)
	if err := writeFileAtomic(path, data); err != nil {
		log.Error("failed to write backup: %v", err)
		return "", err
	}
	log.Info("backup written: %s (words=%d)", name, len(snap.Words))

	if err := r.prune(ctx); err != nil {
		log.Warn("failed to prune old backups: %v", err)
	}
	return path, nil
}

// List returns backup paths, oldest first.
func (r *backupRepository) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		paths = append(paths, filepath.Join(r.dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

func (r *backupRepository) prune(ctx context.Context) error {
	if r.keep <= 0 {
		return nil
	}
	paths, err := r.List(ctx)
	if err != nil {
		return err
	}
	log := logger.FromContext(ctx).WithPrefix("backup")
	for len(paths) > r.keep {
		log.Debug("removing old backup: %s", filepath.Base(paths[0]))
		if err := os.Remove(paths[0]); err != nil {
			return err
		}
		paths = paths[1:]
	}
	return nil
}

package repository

import (
	"context"

	"github.com/vytor/wordflash/internal/models"
)

// SnapshotRepository persists the full store state as one unit.
type SnapshotRepository interface {
	// Load returns the last saved snapshot, or nil when nothing was saved yet.
	Load(ctx context.Context) (*models.Snapshot, error)
	// Save replaces the persisted snapshot atomically.
	Save(ctx context.Context, snap models.Snapshot) error
	// Ping reports whether the backend is reachable and writable.
	Ping(ctx context.Context) error
}

// BackupRepository keeps rotating copies of past snapshots.
type BackupRepository interface {
	Write(ctx context.Context, snap models.Snapshot) (string, error)
	List(ctx context.Context) ([]string, error)
}

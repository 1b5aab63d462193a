package jobs

import "github.com/vytor/wordflash/internal/importer"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueImport(path string, format importer.Format, label string) error
}

package jobs

import (
	"github.com/vytor/wordflash/internal/importer"
	"github.com/vytor/wordflash/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	importPool *worker.Pool
	importer   worker.DeckImporter
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(importPool *worker.Pool, deckImporter worker.DeckImporter) JobQueue {
	return &WorkerQueue{
		importPool: importPool,
		importer:   deckImporter,
	}
}

func (q *WorkerQueue) EnqueueImport(path string, format importer.Format, label string) error {
	return q.importPool.Submit(&worker.ImportDeckJob{
		Importer: q.importer,
		Path:     path,
		Format:   format,
		Label:    label,
	})
}

package worker

import (
	"context"

	"github.com/vytor/wordflash/internal/importer"
)

// DeckImporter imports a deck file from disk.
// This avoids import cycles by not importing the services package
type DeckImporter interface {
	ImportFile(ctx context.Context, path string, format importer.Format, label string) error
}

// ImportDeckJob replaces the store contents with the deck at Path.
type ImportDeckJob struct {
	Importer DeckImporter
	Path     string
	Format   importer.Format
	Label    string
}

func (j *ImportDeckJob) Name() string { return "import_deck" }

func (j *ImportDeckJob) Run(ctx context.Context) error {
	return j.Importer.ImportFile(ctx, j.Path, j.Format, j.Label)
}

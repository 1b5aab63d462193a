package api

import (
	"github.com/vytor/wordflash/internal/jobs"
	"github.com/vytor/wordflash/internal/services"
)

// Server exposes the deck and drill services over HTTP.
type Server struct {
	DeckService  services.DeckService
	DrillService services.DrillService
	JobQueue     jobs.JobQueue

	// ImportRoot confines server-side deck imports to one directory tree.
	// Empty allows any path the process can read, which only suits a
	// single-learner server bound to localhost.
	ImportRoot string
}

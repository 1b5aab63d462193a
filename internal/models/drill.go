package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/vytor/wordflash/internal/errors"
)

// Mode selects the drill a session runs.
type Mode string

const (
	ModeLearn  Mode = "learn"
	ModeReview Mode = "review"
	ModeTest   Mode = "test"
)

// Modes lists every drill mode in menu order.
var Modes = []Mode{ModeLearn, ModeReview, ModeTest}

// ParseMode resolves a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeLearn, ModeReview, ModeTest:
		return m, nil
	}
	return "", errors.NewValidationError("mode", "must be one of learn, review, test")
}

// Phase tells the presentation layer which controls to render.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseChoice      Phase = "choice"      // learn stage 1: pick the definition
	PhaseRecall      Phase = "recall"      // learn stage 2: know / don't know
	PhaseConfirm     Phase = "confirm"     // learn stage 2: definition shown, next / misremembered
	PhaseRecognition Phase = "recognition" // review: know / don't know
	PhaseSpelling    Phase = "spelling"
	PhaseComplete    Phase = "complete"
)

// Prompt is the read-only view of the current drill step.
type Prompt struct {
	SessionID    uuid.UUID `json:"session_id"`
	Mode         Mode      `json:"mode"`
	Phase        Phase     `json:"phase"`
	Word         string    `json:"word,omitempty"`
	Definition   string    `json:"definition,omitempty"`
	PartOfSpeech string    `json:"pos,omitempty"`
	Example      string    `json:"example,omitempty"`
	Cloze        string    `json:"cloze,omitempty"`
	Options      []string  `json:"options,omitempty"`
	Stage        int       `json:"stage,omitempty"`
	Remaining    int       `json:"remaining"`
	Correct      int       `json:"correct"`
	Answered     int       `json:"answered"`
}

// Complete reports whether the session has run out of words.
func (p Prompt) Complete() bool {
	return p.Phase == PhaseComplete
}

// Feedback describes the outcome of one answer.
type Feedback struct {
	Correct  bool   `json:"correct"`
	Expected string `json:"expected"`
	Requeued bool   `json:"requeued"`
	Next     Prompt `json:"next"`
}

// SessionStats is the score board of a running session.
type SessionStats struct {
	SessionID uuid.UUID `json:"session_id"`
	Mode      Mode      `json:"mode"`
	Remaining int       `json:"remaining"`
	Correct   int       `json:"correct"`
	Answered  int       `json:"answered"`
	Percent   float64   `json:"percent"`
	Progress  Progress  `json:"progress"`
}

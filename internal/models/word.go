package models

import "strings"

const (
	MinStage = 1
	MaxStage = 3
)

// WordRecord is one vocabulary entry plus its mastery state.
//
// Stage 1 is multiple-choice recognition, stage 2 active recall and stage 3
// spelling production. Attempts counts every wrong or "don't know" answer and
// is only used for analytics.
type WordRecord struct {
	Word         string `json:"word"`
	Definition   string `json:"definition"`
	PartOfSpeech string `json:"pos"`
	Example      string `json:"example"`
	Stage        int    `json:"stage"`
	Learned      bool   `json:"learned"`
	Attempts     int    `json:"attempts"`
	Reviewed     bool   `json:"reviewed"`
	Tested       bool   `json:"tested"`
}

// NewWordRecord returns a record with fresh mastery state.
func NewWordRecord(word, pos, definition, example string) WordRecord {
	return WordRecord{
		Word:         strings.TrimSpace(word),
		Definition:   strings.TrimSpace(definition),
		PartOfSpeech: strings.TrimSpace(pos),
		Example:      strings.TrimSpace(example),
		Stage:        MinStage,
	}
}

// ClampStage forces stage into [MinStage, MaxStage].
func ClampStage(stage int) int {
	if stage < MinStage {
		return MinStage
	}
	if stage > MaxStage {
		return MaxStage
	}
	return stage
}

// Normalize trims the word and restores the stage and attempts invariants.
func (w *WordRecord) Normalize() {
	w.Word = strings.TrimSpace(w.Word)
	w.Stage = ClampStage(w.Stage)
	if w.Attempts < 0 {
		w.Attempts = 0
	}
}

// ResetProgress puts the record back to a brand-new deck state.
func (w *WordRecord) ResetProgress() {
	w.Stage = MinStage
	w.Learned = false
	w.Reviewed = false
	w.Tested = false
	w.Attempts = 0
}

// Valid reports whether the record may take part in a drill session.
func (w *WordRecord) Valid() bool {
	return strings.TrimSpace(w.Word) != ""
}

// Key is the case-insensitive identity used for answer matching and lookups.
func (w *WordRecord) Key() string {
	return NormalizeAnswer(w.Word)
}

// NormalizeAnswer trims and lower-cases s for comparison.
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

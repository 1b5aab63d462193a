package progression

import (
	"math/rand/v2"
	"strings"

	"github.com/vytor/wordflash/internal/models"
)

// ChoiceOptionCount is the number of options shown for a stage-1 question.
const ChoiceOptionCount = 4

// MatchesDefinition reports whether a picked option is the record's definition.
func MatchesDefinition(w models.WordRecord, option string) bool {
	return models.NormalizeAnswer(option) == models.NormalizeAnswer(w.Definition)
}

// MatchesWord reports whether typed input spells the record's word.
func MatchesWord(w models.WordRecord, input string) bool {
	return models.NormalizeAnswer(input) == w.Key()
}

// Distractors gathers the distinct, non-empty definitions of every other
// record, minus the current definition, in random order. Definitions are
// compared the way MatchesDefinition compares them.
func Distractors(current *models.WordRecord, all []*models.WordRecord, rng *rand.Rand) []string {
	seen := map[string]bool{models.NormalizeAnswer(current.Definition): true}
	pool := make([]string, 0, len(all))
	for _, w := range all {
		if w == current {
			continue
		}
		def := strings.TrimSpace(w.Definition)
		key := models.NormalizeAnswer(def)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		pool = append(pool, def)
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool
}

// ChoiceOptions builds the shuffled option set for a stage-1 question: the
// correct definition plus up to three distractors, padded with empty strings.
func ChoiceOptions(current *models.WordRecord, all []*models.WordRecord, rng *rand.Rand) []string {
	distractors := Distractors(current, all, rng)
	if len(distractors) > ChoiceOptionCount-1 {
		distractors = distractors[:ChoiceOptionCount-1]
	}

	opts := make([]string, 0, ChoiceOptionCount)
	opts = append(opts, strings.TrimSpace(current.Definition))
	opts = append(opts, distractors...)
	for len(opts) < ChoiceOptionCount {
		opts = append(opts, "")
	}
	rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts
}

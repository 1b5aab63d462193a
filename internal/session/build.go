package session

import (
	"math/rand/v2"
	"sort"

	"github.com/vytor/wordflash/internal/models"
)

// BuildLearn samples up to count unlearned records and orders them by
// ascending stage, shuffled within each stage.
func BuildLearn(words []*models.WordRecord, count int, rng *rand.Rand) *Queue {
	pool := filter(words, func(w *models.WordRecord) bool { return !w.Learned })
	selected := sample(pool, count, rng)

	groups := map[int][]*models.WordRecord{}
	for _, w := range selected {
		stage := models.ClampStage(w.Stage)
		groups[stage] = append(groups[stage], w)
	}
	stages := make([]int, 0, len(groups))
	for st := range groups {
		stages = append(stages, st)
	}
	sort.Ints(stages)

	ordered := make([]*models.WordRecord, 0, len(selected))
	for _, st := range stages {
		grp := groups[st]
		shuffle(grp, rng)
		ordered = append(ordered, grp...)
	}
	return NewQueue(ordered)
}

// BuildReview shuffles the learned records, or the whole store when nothing
// is learned yet, and keeps the first count.
func BuildReview(words []*models.WordRecord, count int, rng *rand.Rand) *Queue {
	pool := filter(words, func(w *models.WordRecord) bool { return w.Learned })
	if len(pool) == 0 {
		pool = filter(words, func(*models.WordRecord) bool { return true })
	}
	shuffle(pool, rng)
	return NewQueue(truncate(pool, count))
}

// BuildTest shuffles the untested records and keeps the first count.
func BuildTest(words []*models.WordRecord, count int, rng *rand.Rand) *Queue {
	pool := filter(words, func(w *models.WordRecord) bool { return !w.Tested })
	shuffle(pool, rng)
	return NewQueue(truncate(pool, count))
}

// Build dispatches to the builder for mode.
func Build(mode models.Mode, words []*models.WordRecord, settings models.Settings, rng *rand.Rand) *Queue {
	count := settings.CountFor(mode)
	switch mode {
	case models.ModeReview:
		return BuildReview(words, count, rng)
	case models.ModeTest:
		return BuildTest(words, count, rng)
	default:
		return BuildLearn(words, count, rng)
	}
}

// filter keeps records with a usable word that satisfy keep.
func filter(words []*models.WordRecord, keep func(*models.WordRecord) bool) []*models.WordRecord {
	out := make([]*models.WordRecord, 0, len(words))
	for _, w := range words {
		if w != nil && w.Valid() && keep(w) {
			out = append(out, w)
		}
	}
	return out
}

// sample draws up to count records without replacement.
func sample(pool []*models.WordRecord, count int, rng *rand.Rand) []*models.WordRecord {
	if count <= 0 {
		return nil
	}
	if count >= len(pool) {
		out := make([]*models.WordRecord, len(pool))
		copy(out, pool)
		return out
	}
	out := make([]*models.WordRecord, 0, count)
	for _, idx := range rng.Perm(len(pool))[:count] {
		out = append(out, pool[idx])
	}
	return out
}

func shuffle(words []*models.WordRecord, rng *rand.Rand) {
	rng.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
}

func truncate(words []*models.WordRecord, count int) []*models.WordRecord {
	if count < 0 {
		count = 0
	}
	if len(words) > count {
		return words[:count]
	}
	return words
}

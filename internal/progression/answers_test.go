package progression_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/progression"
)

func TestMatchesWord_CaseInsensitive(t *testing.T) {
	w := models.WordRecord{Word: "apple"}

	assert.True(t, progression.MatchesWord(w, "APPLE"))
	assert.True(t, progression.MatchesWord(w, "  Apple "))
	assert.False(t, progression.MatchesWord(w, "appl"))
}

func TestMatchesDefinition(t *testing.T) {
	w := models.WordRecord{Word: "apple", Definition: "A Fruit"}

	assert.True(t, progression.MatchesDefinition(w, " a fruit"))
	assert.False(t, progression.MatchesDefinition(w, "a vegetable"))
}

func TestCloze_ShortWords(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	assert.Equal(t, "", progression.Cloze("", rng))
	assert.Equal(t, "", progression.Cloze("a", rng))
}

func TestCloze_BlankCounts(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))

	for _, w := range []string{"ox", "cat", "apple", "zebra", "extraordinary"} {
		n := len(w)
		upper := min((n+1)/2, n-1)
		for i := 0; i < 50; i++ {
			tokens := strings.Split(progression.Cloze(w, rng), " ")
			require.Len(t, tokens, n)

			blanks := 0
			for j, tok := range tokens {
				if tok == progression.Blank {
					blanks++
					continue
				}
				assert.Equal(t, string(w[j]), tok, "visible letters keep their position")
			}
			assert.GreaterOrEqual(t, blanks, 1, w)
			assert.LessOrEqual(t, blanks, upper, w)
		}
	}
}

func TestCloze_FreshPerCall(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	seen := map[string]bool{}
	for i := 0; i < 40; i++ {
		seen[progression.Cloze("vocabulary", rng)] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestChoiceOptions(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 9))
	words := []*models.WordRecord{
		{Word: "apple", Definition: "fruit"},
		{Word: "pear", Definition: "fruit"},
		{Word: "dog", Definition: "animal"},
		{Word: "cat", Definition: "animal"},
		{Word: "run", Definition: "move fast"},
		{Word: "sky", Definition: ""},
		{Word: "sea", Definition: "water"},
	}

	opts := progression.ChoiceOptions(words[0], words, rng)
	require.Len(t, opts, progression.ChoiceOptionCount)

	count := 0
	for _, o := range opts {
		if o == "fruit" {
			count++
		}
	}
	assert.Equal(t, 1, count, "the correct definition appears exactly once")
	assert.NotContains(t, opts, "")
}

func TestChoiceOptions_PadsWithEmpty(t *testing.T) {
	rng := rand.New(rand.NewPCG(10, 11))
	words := []*models.WordRecord{
		{Word: "apple", Definition: "fruit"},
		{Word: "dog", Definition: "animal"},
	}

	opts := progression.ChoiceOptions(words[0], words, rng)
	assert.ElementsMatch(t, []string{"fruit", "animal", "", ""}, opts)
}

func TestChoiceOptions_CaseVariantDefinitions(t *testing.T) {
	words := []*models.WordRecord{
		{Word: "apple", Definition: "Fruit"},
		{Word: "pear", Definition: "fruit"},
		{Word: "plum", Definition: " FRUIT "},
		{Word: "dog", Definition: "Animal"},
		{Word: "cat", Definition: "animal"},
	}

	for seed := uint64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed+1))
		opts := progression.ChoiceOptions(words[0], words, rng)
		require.Len(t, opts, progression.ChoiceOptionCount)

		correct := 0
		for _, o := range opts {
			if progression.MatchesDefinition(*words[0], o) {
				correct++
			}
		}
		assert.Equal(t, 1, correct, "seed %d: options %q", seed, opts)
		assert.ElementsMatch(t, []string{"Fruit", "Animal", "", ""}, opts)
	}
}

func TestDistractors_CaseInsensitiveDedupe(t *testing.T) {
	words := []*models.WordRecord{
		{Word: "apple", Definition: "fruit"},
		{Word: "dog", Definition: "Animal"},
		{Word: "cat", Definition: "animal "},
		{Word: "pear", Definition: "FRUIT"},
	}

	got := progression.Distractors(words[0], words, rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, []string{"Animal"}, got)
}

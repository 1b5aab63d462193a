package drill_test

import (
	"context"
	stderrors "errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/drill"
	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/models"
)

type memStore struct {
	words    []*models.WordRecord
	settings models.Settings
	saves    int
	saveErr  error
}

func newMemStore(words ...*models.WordRecord) *memStore {
	return &memStore{words: words, settings: models.DefaultSettings()}
}

func (s *memStore) Words() []*models.WordRecord {
	return append([]*models.WordRecord(nil), s.words...)
}

func (s *memStore) Settings() models.Settings {
	return s.settings
}

func (s *memStore) FindByWord(word string) *models.WordRecord {
	for _, w := range s.words {
		if w.Key() == models.NormalizeAnswer(word) {
			return w
		}
	}
	return nil
}

func (s *memStore) Save(ctx context.Context) error {
	if s.saveErr != nil {
		return errors.NewIOError("save progress", s.saveErr)
	}
	s.saves++
	return nil
}

func word(text, definition string, stage int) *models.WordRecord {
	w := models.NewWordRecord(text, "n.", definition, "example with "+text)
	w.Stage = stage
	return &w
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func TestNew_UnknownMode(t *testing.T) {
	_, err := drill.New(models.Mode("quiz"), newMemStore(), nil)
	assert.True(t, errors.IsValidation(err))

	c, err := drill.New(models.ModeTest, newMemStore(), nil)
	require.NoError(t, err)
	assert.Equal(t, models.ModeTest, c.Mode())
}

func TestActionsBeforeStartAndAfterCompletion(t *testing.T) {
	c := drill.NewLearn(newMemStore(), newRand())

	_, err := c.Submit(context.Background(), "x")
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, models.PhaseIdle, c.Prompt().Phase)

	p, err := c.Start(context.Background())
	require.NoError(t, err)
	assert.True(t, p.Complete(), "empty store completes immediately")

	_, err = c.Skip(context.Background())
	assert.True(t, errors.IsValidation(err))
}

func TestLearn_ChoiceCorrectPromotesAndRequeues(t *testing.T) {
	apple := word("apple", "a fruit", 1)
	pear := word("pear", "another fruit", 2)
	st := newMemStore(apple, pear)
	c := drill.NewLearn(st, newRand())
	ctx := context.Background()

	p, err := c.Start(ctx)
	require.NoError(t, err)
	require.Equal(t, models.PhaseChoice, p.Phase)
	assert.Equal(t, "apple", p.Word)
	assert.Len(t, p.Options, 4)
	assert.Contains(t, p.Options, "a fruit")
	assert.Contains(t, p.Options, "another fruit")
	assert.Empty(t, p.Definition, "the answer is not given away")

	fb, err := c.Submit(ctx, "  A FRUIT ")
	require.NoError(t, err)

	assert.True(t, fb.Correct)
	assert.True(t, fb.Requeued)
	assert.Equal(t, 2, apple.Stage)
	assert.Equal(t, 1, st.saves)
	assert.Equal(t, "pear", fb.Next.Word)
	assert.Equal(t, models.PhaseRecall, fb.Next.Phase)
	assert.Equal(t, 2, fb.Next.Remaining)
}

func TestLearn_ChoiceWrongDemotesAndRequeuesAtBack(t *testing.T) {
	apple := word("apple", "a fruit", 1)
	pear := word("pear", "another fruit", 2)
	c := drill.NewLearn(newMemStore(apple, pear), newRand())
	ctx := context.Background()
	_, err := c.Start(ctx)
	require.NoError(t, err)

	fb, err := c.Submit(ctx, "another fruit")
	require.NoError(t, err)

	assert.False(t, fb.Correct)
	assert.Equal(t, "a fruit", fb.Expected)
	assert.Equal(t, models.MinStage, apple.Stage)
	assert.Equal(t, 1, apple.Attempts)
	assert.Equal(t, "pear", fb.Next.Word)

	// pear don't-know rotates apple (stage 1) back to the front
	fb, err = c.Skip(ctx)
	require.NoError(t, err)
	assert.Equal(t, "apple", fb.Next.Word)
}

func TestLearn_DontKnowRotatesToStageOne(t *testing.T) {
	x := word("x-ray", "radiation", 1)
	y := word("yak", "an ox", 2)
	c := drill.NewLearn(newMemStore(x, y), newRand())
	ctx := context.Background()
	_, err := c.Start(ctx)
	require.NoError(t, err)

	// x-ray reaches stage 2 and goes behind yak
	fb, err := c.Submit(ctx, "radiation")
	require.NoError(t, err)
	require.Equal(t, "yak", fb.Next.Word)
	require.Equal(t, models.PhaseRecall, fb.Next.Phase)

	fb, err = c.Skip(ctx)
	require.NoError(t, err)

	assert.Equal(t, models.MinStage, y.Stage)
	assert.Equal(t, 1, y.Attempts)
	assert.Equal(t, "yak", fb.Next.Word, "the stage-1 word is rotated to the front")
	assert.Equal(t, models.PhaseChoice, fb.Next.Phase)
	assert.Equal(t, 2, fb.Next.Remaining)
}

func TestLearn_RecallConfirm(t *testing.T) {
	tests := []struct {
		name       string
		remembered bool
		wantStage  int
		wantTries  int
	}{
		{"remembered", true, 3, 0},
		{"misremembered", false, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := word("apple", "a fruit", 2)
			c := drill.NewLearn(newMemStore(w), newRand())
			ctx := context.Background()
			_, err := c.Start(ctx)
			require.NoError(t, err)

			_, err = c.Confirm(ctx, true)
			assert.True(t, errors.IsValidation(err), "confirm needs the reveal first")

			p, err := c.Reveal(ctx)
			require.NoError(t, err)
			assert.Equal(t, models.PhaseConfirm, p.Phase)
			assert.Equal(t, "a fruit", p.Definition)
			assert.Equal(t, 2, w.Stage, "reveal defers the state change")

			fb, err := c.Confirm(ctx, tt.remembered)
			require.NoError(t, err)
			assert.True(t, fb.Requeued)
			assert.Equal(t, tt.wantStage, w.Stage)
			assert.Equal(t, tt.wantTries, w.Attempts)
		})
	}
}

func TestLearn_SpellingCorrectFinishesWord(t *testing.T) {
	apple := word("apple", "a fruit", 3)
	c := drill.NewLearn(newMemStore(apple), newRand())
	ctx := context.Background()

	p, err := c.Start(ctx)
	require.NoError(t, err)
	require.Equal(t, models.PhaseSpelling, p.Phase)
	assert.Empty(t, p.Word)
	assert.Empty(t, p.Example)
	assert.Equal(t, "a fruit", p.Definition)
	assert.Len(t, strings.Split(p.Cloze, " "), 5)
	assert.Contains(t, p.Cloze, "_")

	fb, err := c.Submit(ctx, "APPLE")
	require.NoError(t, err)

	assert.True(t, fb.Correct)
	assert.False(t, fb.Requeued)
	assert.True(t, apple.Learned)
	assert.Equal(t, 3, apple.Stage)
	assert.True(t, fb.Next.Complete())
}

func TestLearn_SpellingWrongResets(t *testing.T) {
	apple := word("apple", "a fruit", 3)
	apple.Learned = false
	c := drill.NewLearn(newMemStore(apple), newRand())
	ctx := context.Background()
	_, err := c.Start(ctx)
	require.NoError(t, err)

	fb, err := c.Submit(ctx, "aple")
	require.NoError(t, err)

	assert.False(t, fb.Correct)
	assert.Equal(t, "apple", fb.Expected)
	assert.Equal(t, models.MinStage, apple.Stage)
	assert.Equal(t, 1, apple.Attempts)
	assert.Equal(t, models.PhaseChoice, fb.Next.Phase)
	assert.Equal(t, "apple", fb.Next.Word)
}

func TestLearn_GiveUpResets(t *testing.T) {
	apple := word("apple", "a fruit", 3)
	c := drill.NewLearn(newMemStore(apple), newRand())
	ctx := context.Background()
	_, err := c.Start(ctx)
	require.NoError(t, err)

	fb, err := c.Skip(ctx)
	require.NoError(t, err)

	assert.True(t, fb.Requeued)
	assert.Equal(t, models.MinStage, apple.Stage)
	assert.False(t, apple.Learned)
}

func TestLearn_EmptySpellingRejected(t *testing.T) {
	apple := word("apple", "a fruit", 3)
	st := newMemStore(apple)
	c := drill.NewLearn(st, newRand())
	ctx := context.Background()
	before, err := c.Start(ctx)
	require.NoError(t, err)

	_, err = c.Submit(ctx, "   ")

	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, 3, apple.Stage)
	assert.Zero(t, st.saves)
	assert.Equal(t, before, c.Prompt())
}

func TestSaveFailureRollsBack(t *testing.T) {
	apple := word("apple", "a fruit", 1)
	st := newMemStore(apple)
	st.saveErr = stderrors.New("disk full")
	c := drill.NewLearn(st, newRand())
	ctx := context.Background()
	before, err := c.Start(ctx)
	require.NoError(t, err)

	_, err = c.Submit(ctx, "a fruit")

	assert.True(t, errors.IsIO(err))
	assert.Equal(t, 1, apple.Stage)
	assert.Equal(t, before, c.Prompt())
	assert.Zero(t, c.Stats().Answered)

	st.saveErr = nil
	fb, err := c.Submit(ctx, "a fruit")
	require.NoError(t, err)
	assert.True(t, fb.Correct)
	assert.Equal(t, 2, apple.Stage)
}

func TestReview_FallsBackAndCycles(t *testing.T) {
	apple := word("apple", "a fruit", 2)
	st := newMemStore(apple)
	c := drill.NewReview(st, newRand())
	ctx := context.Background()

	p, err := c.Start(ctx)
	require.NoError(t, err)
	require.Equal(t, models.PhaseRecognition, p.Phase)
	assert.Equal(t, "apple", p.Word)

	_, err = c.Submit(ctx, "apple")
	assert.True(t, errors.IsValidation(err), "spelling comes after recognition")

	p, err = c.Reveal(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseSpelling, p.Phase)
	assert.NotEmpty(t, p.Cloze)

	fb, err := c.Submit(ctx, "Apple")
	require.NoError(t, err)

	assert.True(t, fb.Correct)
	assert.True(t, fb.Requeued)
	assert.True(t, apple.Learned)
	assert.True(t, apple.Reviewed)
	assert.Equal(t, 3, apple.Stage)
	assert.Equal(t, models.PhaseRecognition, fb.Next.Phase)
	assert.Equal(t, 1, fb.Next.Remaining)
}

func TestReview_DontKnowAndWrongSpellingReset(t *testing.T) {
	apple := word("apple", "a fruit", 3)
	apple.Learned = true
	c := drill.NewReview(newMemStore(apple), newRand())
	ctx := context.Background()
	_, err := c.Start(ctx)
	require.NoError(t, err)

	fb, err := c.Skip(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, apple.Stage)
	assert.Equal(t, 1, apple.Attempts)
	assert.True(t, fb.Requeued)

	_, err = c.Reveal(ctx)
	require.NoError(t, err)
	fb, err = c.Submit(ctx, "apply")
	require.NoError(t, err)
	assert.False(t, fb.Correct)
	assert.Equal(t, 1, apple.Stage)
	assert.Equal(t, 2, apple.Attempts)
	assert.False(t, apple.Reviewed)

	_, err = c.Confirm(ctx, true)
	assert.True(t, errors.IsValidation(err))
}

func TestTest_WrongAnswerLeavesWordUntested(t *testing.T) {
	apple := word("apple", "a fruit", 1)
	st := newMemStore(apple)
	c := drill.NewTest(st, newRand())
	ctx := context.Background()
	_, err := c.Start(ctx)
	require.NoError(t, err)

	fb, err := c.Submit(ctx, "pear")
	require.NoError(t, err)

	assert.False(t, fb.Correct)
	assert.False(t, fb.Requeued)
	assert.False(t, apple.Tested)
	assert.Zero(t, apple.Attempts)
	assert.Zero(t, st.saves, "nothing changed, nothing saved")
	assert.True(t, fb.Next.Complete())
	assert.Equal(t, 1, fb.Next.Answered)
	assert.Equal(t, 0, fb.Next.Correct)
}

func TestTest_ScoreAndSkip(t *testing.T) {
	words := []*models.WordRecord{word("apple", "a fruit", 1), word("pear", "another fruit", 1), word("plum", "a stone fruit", 1)}
	c := drill.NewTest(newMemStore(words...), newRand())
	ctx := context.Background()
	p, err := c.Start(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, p.Remaining)

	byDefinition := map[string]string{}
	for _, w := range words {
		byDefinition[w.Definition] = w.Word
	}

	_, err = c.Submit(ctx, byDefinition[c.Prompt().Definition])
	require.NoError(t, err)
	_, err = c.Skip(ctx)
	require.NoError(t, err)
	_, err = c.Submit(ctx, byDefinition[c.Prompt().Definition])
	require.NoError(t, err)

	stats := c.Stats()
	assert.Equal(t, 2, stats.Correct)
	assert.Equal(t, 3, stats.Answered)
	assert.InDelta(t, 66.67, stats.Percent, 0.01)
	assert.Zero(t, stats.Remaining)
	assert.Equal(t, models.Progress{Done: 2, Total: 3}, stats.Progress)
}

func TestTest_SuccessResolvesFirstRecordWithSameWord(t *testing.T) {
	first := word("apple", "first", 1)
	second := word("Apple", "second", 1)
	c := drill.NewTest(newMemStore(first, second), newRand())
	ctx := context.Background()
	_, err := c.Start(ctx)
	require.NoError(t, err)

	if c.Prompt().Definition == "first" {
		_, err = c.Submit(ctx, "wrong")
		require.NoError(t, err)
	}
	require.Equal(t, "second", c.Prompt().Definition)

	fb, err := c.Submit(ctx, "apple")
	require.NoError(t, err)

	assert.True(t, fb.Correct)
	assert.True(t, first.Tested)
	assert.False(t, second.Tested)
}

func TestTest_OnlyUntestedWords(t *testing.T) {
	done := word("apple", "a fruit", 1)
	done.Tested = true
	c := drill.NewTest(newMemStore(done), newRand())

	p, err := c.Start(context.Background())
	require.NoError(t, err)
	assert.True(t, p.Complete())

	_, err = c.Reveal(context.Background())
	assert.True(t, errors.IsValidation(err))
}

func TestStartResetsScore(t *testing.T) {
	apple := word("apple", "a fruit", 1)
	c := drill.NewTest(newMemStore(apple), newRand())
	ctx := context.Background()
	_, err := c.Start(ctx)
	require.NoError(t, err)
	_, err = c.Submit(ctx, "wrong")
	require.NoError(t, err)

	p, err := c.Start(ctx)
	require.NoError(t, err)

	assert.Zero(t, p.Answered)
	assert.Equal(t, 1, p.Remaining)
	assert.Equal(t, c.ID(), p.SessionID)
}

package drill

import (
	"context"
	"math/rand/v2"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/progression"
)

// testController asks for each untested word once and keeps a score.
type testController struct {
	base
}

// NewTest returns a test-mode controller. A nil rng is seeded randomly.
func NewTest(store Store, rng *rand.Rand) Controller {
	return &testController{base: newBase(models.ModeTest, store, rng)}
}

// Submit marks the word tested when spelled right. The flag lands on the
// first store record with the same word text, which is not necessarily the
// queued record when the deck holds duplicates.
func (c *testController) Submit(ctx context.Context, answer string) (models.Feedback, error) {
	if err := c.expect(models.PhaseSpelling); err != nil {
		return models.Feedback{}, err
	}
	if err := requireInput(answer); err != nil {
		return models.Feedback{}, err
	}
	w := c.current
	correct := progression.MatchesWord(*w, answer)

	target := w
	if correct {
		if found := c.store.FindByWord(w.Word); found != nil {
			target = found
		}
	}
	next, effect := progression.TestSpelling(*target, correct)
	return c.commit(ctx, outcome{target: target, next: next, effect: effect, correct: correct, expected: w.Word})
}

// Skip gives up on the word; it counts as a wrong answer.
func (c *testController) Skip(ctx context.Context) (models.Feedback, error) {
	if err := c.expect(models.PhaseSpelling); err != nil {
		return models.Feedback{}, err
	}
	w := c.current
	next, effect := progression.TestSpelling(*w, false)
	return c.commit(ctx, outcome{next: next, effect: effect, expected: w.Word})
}

func (c *testController) Reveal(ctx context.Context) (models.Prompt, error) {
	return models.Prompt{}, errors.NewValidationError("action", "test has nothing to reveal")
}

func (c *testController) Confirm(ctx context.Context, remembered bool) (models.Feedback, error) {
	return models.Feedback{}, errors.NewValidationError("action", "test has no confirmation step")
}

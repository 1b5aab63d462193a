package drill

import (
	"context"
	"math/rand/v2"

	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/progression"
)

// learnController walks unlearned words through choice, recall and spelling.
type learnController struct {
	base
}

// NewLearn returns a learn-mode controller. A nil rng is seeded randomly.
func NewLearn(store Store, rng *rand.Rand) Controller {
	return &learnController{base: newBase(models.ModeLearn, store, rng)}
}

func (c *learnController) Submit(ctx context.Context, answer string) (models.Feedback, error) {
	if err := c.expect(models.PhaseChoice, models.PhaseSpelling); err != nil {
		return models.Feedback{}, err
	}
	w := c.current

	if c.phase == models.PhaseChoice {
		correct := progression.MatchesDefinition(*w, answer)
		next, effect := progression.LearnChoice(*w, correct)
		return c.commit(ctx, outcome{next: next, effect: effect, correct: correct, expected: w.Definition})
	}

	if err := requireInput(answer); err != nil {
		return models.Feedback{}, err
	}
	correct := progression.MatchesWord(*w, answer)
	next, effect := progression.LearnSpelling(*w, correct)
	return c.commit(ctx, outcome{next: next, effect: effect, correct: correct, expected: w.Word})
}

func (c *learnController) Skip(ctx context.Context) (models.Feedback, error) {
	if err := c.expect(models.PhaseRecall, models.PhaseSpelling); err != nil {
		return models.Feedback{}, err
	}
	w := c.current

	if c.phase == models.PhaseRecall {
		next, effect := progression.LearnDontKnow(*w)
		return c.commit(ctx, outcome{next: next, effect: effect, expected: w.Definition})
	}
	next, effect := progression.LearnGiveUp(*w)
	return c.commit(ctx, outcome{next: next, effect: effect, expected: w.Word})
}

// Reveal moves a recall prompt to its confirmation step. No state changes
// until Confirm.
func (c *learnController) Reveal(ctx context.Context) (models.Prompt, error) {
	if err := c.expect(models.PhaseRecall); err != nil {
		return models.Prompt{}, err
	}
	c.phase = models.PhaseConfirm
	return c.Prompt(), nil
}

func (c *learnController) Confirm(ctx context.Context, remembered bool) (models.Feedback, error) {
	if err := c.expect(models.PhaseConfirm); err != nil {
		return models.Feedback{}, err
	}
	w := c.current
	next, effect := progression.LearnRecallConfirm(*w, remembered)
	return c.commit(ctx, outcome{next: next, effect: effect, correct: remembered, expected: w.Definition})
}

package drill

import (
	"context"
	"math/rand/v2"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/progression"
)

// reviewController cycles learned words through recognition then spelling.
// Words are requeued after every answer, so the session only ends when it is
// abandoned.
type reviewController struct {
	base
}

// NewReview returns a review-mode controller. A nil rng is seeded randomly.
func NewReview(store Store, rng *rand.Rand) Controller {
	return &reviewController{base: newBase(models.ModeReview, store, rng)}
}

func (c *reviewController) Submit(ctx context.Context, answer string) (models.Feedback, error) {
	if err := c.expect(models.PhaseSpelling); err != nil {
		return models.Feedback{}, err
	}
	if err := requireInput(answer); err != nil {
		return models.Feedback{}, err
	}
	w := c.current
	correct := progression.MatchesWord(*w, answer)
	next, effect := progression.ReviewSpelling(*w, correct)
	return c.commit(ctx, outcome{next: next, effect: effect, correct: correct, expected: w.Word})
}

func (c *reviewController) Skip(ctx context.Context) (models.Feedback, error) {
	if err := c.expect(models.PhaseRecognition, models.PhaseSpelling); err != nil {
		return models.Feedback{}, err
	}
	w := c.current

	if c.phase == models.PhaseRecognition {
		next, effect := progression.ReviewDontKnow(*w)
		return c.commit(ctx, outcome{next: next, effect: effect, expected: w.Word})
	}
	next, effect := progression.ReviewSpelling(*w, false)
	return c.commit(ctx, outcome{next: next, effect: effect, expected: w.Word})
}

// Reveal accepts "know" on a recognition prompt and asks for the spelling.
func (c *reviewController) Reveal(ctx context.Context) (models.Prompt, error) {
	if err := c.expect(models.PhaseRecognition); err != nil {
		return models.Prompt{}, err
	}
	c.enterSpelling()
	return c.Prompt(), nil
}

func (c *reviewController) Confirm(ctx context.Context, remembered bool) (models.Feedback, error) {
	return models.Feedback{}, errors.NewValidationError("action", "review has no confirmation step")
}

// Package drill runs interactive learn, review and test sessions over a
// store. A controller is single-use per session and not safe for
// concurrent use.
package drill

import (
	"context"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/progression"
	"github.com/vytor/wordflash/internal/session"
)

// Store is what a drill session needs from the vocab store.
type Store interface {
	Words() []*models.WordRecord
	Settings() models.Settings
	FindByWord(word string) *models.WordRecord
	Save(ctx context.Context) error
}

// Controller drives one drill session.
type Controller interface {
	ID() uuid.UUID
	Mode() models.Mode
	// Start builds a fresh queue and shows the first word.
	Start(ctx context.Context) (models.Prompt, error)
	Prompt() models.Prompt
	// Submit answers a choice or spelling prompt.
	Submit(ctx context.Context, answer string) (models.Feedback, error)
	// Skip is the "don't know" exit of the current prompt.
	Skip(ctx context.Context) (models.Feedback, error)
	// Reveal is the "know" tap of a recall or recognition prompt.
	Reveal(ctx context.Context) (models.Prompt, error)
	// Confirm closes a learn recall after the definition was shown.
	Confirm(ctx context.Context, remembered bool) (models.Feedback, error)
	Stats() models.SessionStats
}

// New returns the controller for mode.
func New(mode models.Mode, store Store, rng *rand.Rand) (Controller, error) {
	switch mode {
	case models.ModeLearn:
		return NewLearn(store, rng), nil
	case models.ModeReview:
		return NewReview(store, rng), nil
	case models.ModeTest:
		return NewTest(store, rng), nil
	}
	return nil, errors.NewValidationError("mode", "unknown mode "+string(mode))
}

// base holds the queue, the current record and the score shared by every mode.
type base struct {
	id      uuid.UUID
	mode    models.Mode
	store   Store
	rng     *rand.Rand
	queue   *session.Queue
	current *models.WordRecord
	phase   models.Phase
	cloze   string
	options []string

	correct  int
	answered int
}

func newBase(mode models.Mode, store Store, rng *rand.Rand) base {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return base{
		id:    uuid.New(),
		mode:  mode,
		store: store,
		rng:   rng,
		queue: session.NewQueue(nil),
		phase: models.PhaseIdle,
	}
}

func (b *base) ID() uuid.UUID {
	return b.id
}

func (b *base) Mode() models.Mode {
	return b.mode
}

func (b *base) Start(ctx context.Context) (models.Prompt, error) {
	log := logger.FromContext(ctx).WithPrefix("drill").WithField("mode", b.mode)

	b.queue = session.Build(b.mode, b.store.Words(), b.store.Settings(), b.rng)
	b.correct, b.answered = 0, 0
	log.Debug("session %s started with %d words", b.id, b.queue.Len())

	b.advance()
	return b.Prompt(), nil
}

// advance shows the next queued record, or completes the session.
func (b *base) advance() {
	b.current, b.cloze, b.options = nil, "", nil

	w := b.queue.PopFront()
	if w == nil {
		b.phase = models.PhaseComplete
		return
	}
	b.current = w

	switch b.mode {
	case models.ModeLearn:
		switch models.ClampStage(w.Stage) {
		case 1:
			b.phase = models.PhaseChoice
			b.options = progression.ChoiceOptions(w, b.store.Words(), b.rng)
		case 2:
			b.phase = models.PhaseRecall
		default:
			b.enterSpelling()
		}
	case models.ModeReview:
		b.phase = models.PhaseRecognition
	default:
		b.enterSpelling()
	}
}

func (b *base) enterSpelling() {
	b.phase = models.PhaseSpelling
	b.cloze = progression.Cloze(b.current.Word, b.rng)
}

func (b *base) Prompt() models.Prompt {
	p := models.Prompt{
		SessionID: b.id,
		Mode:      b.mode,
		Phase:     b.phase,
		Remaining: b.remaining(),
		Correct:   b.correct,
		Answered:  b.answered,
	}
	w := b.current
	if w == nil {
		return p
	}
	p.Stage = w.Stage
	p.PartOfSpeech = w.PartOfSpeech

	switch b.phase {
	case models.PhaseChoice:
		p.Word = w.Word
		p.Options = append([]string(nil), b.options...)
	case models.PhaseRecall, models.PhaseRecognition:
		p.Word = w.Word
	case models.PhaseConfirm:
		p.Word = w.Word
		p.Definition = w.Definition
		p.Example = w.Example
	case models.PhaseSpelling:
		// the example usually contains the word itself
		p.Definition = w.Definition
		p.Cloze = b.cloze
	}
	return p
}

func (b *base) remaining() int {
	n := b.queue.Len()
	if b.current != nil {
		n++
	}
	return n
}

func (b *base) Stats() models.SessionStats {
	st := models.SessionStats{
		SessionID: b.id,
		Mode:      b.mode,
		Remaining: b.remaining(),
		Correct:   b.correct,
		Answered:  b.answered,
		Progress:  models.ComputeStats(b.store.Words()).ProgressFor(b.mode),
	}
	if b.answered > 0 {
		st.Percent = float64(b.correct) / float64(b.answered) * 100
	}
	return st
}

// expect fails unless the session shows one of phases.
func (b *base) expect(phases ...models.Phase) error {
	switch b.phase {
	case models.PhaseIdle:
		return errors.NewValidationError("session", "not started")
	case models.PhaseComplete:
		return errors.NewValidationError("session", "already complete")
	}
	for _, p := range phases {
		if b.phase == p {
			return nil
		}
	}
	return errors.NewValidationError("action", "not allowed in phase "+string(b.phase))
}

// outcome is one scored answer on the current record.
type outcome struct {
	target   *models.WordRecord // record that receives next, usually current
	next     models.WordRecord
	effect   progression.Effect
	correct  bool
	expected string
}

// commit writes o through the store before touching the queue. When the save
// fails the record and score are restored and the prompt stays put.
func (b *base) commit(ctx context.Context, o outcome) (models.Feedback, error) {
	log := logger.FromContext(ctx).WithPrefix("drill").WithField("mode", b.mode)

	target := o.target
	if target == nil {
		target = b.current
	}
	prev := *target
	prevCorrect, prevAnswered := b.correct, b.answered

	*target = o.next
	b.answered++
	if o.correct {
		b.correct++
	}

	if o.next != prev {
		if err := b.store.Save(ctx); err != nil {
			*target = prev
			b.correct, b.answered = prevCorrect, prevAnswered
			log.Error("answer on %q not saved: %v", b.current.Word, err)
			return models.Feedback{}, err
		}
	}
	log.Debug("answered %q correct=%t stage=%d effect=%s", b.current.Word, o.correct, o.next.Stage, o.effect)

	switch o.effect {
	case progression.Requeue:
		b.queue.PushBack(b.current)
	case progression.RequeueRotate:
		b.queue.PushBack(b.current)
		b.queue.RotateUntilStageOne()
	}
	b.advance()

	return models.Feedback{
		Correct:  o.correct,
		Expected: o.expected,
		Requeued: o.effect != progression.Drop,
		Next:     b.Prompt(),
	}, nil
}

func requireInput(answer string) error {
	if models.NormalizeAnswer(answer) == "" {
		return errors.NewValidationError("answer", "cannot be empty")
	}
	return nil
}

package services

import (
	"context"
	"math/rand/v2"

	"github.com/vytor/wordflash/internal/drill"
	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/store"
)

// DrillService runs at most one session per mode over the shared store.
type DrillService interface {
	Start(ctx context.Context, mode models.Mode) (models.Prompt, error)
	Prompt(ctx context.Context, mode models.Mode) (models.Prompt, error)
	Submit(ctx context.Context, mode models.Mode, answer string) (models.Feedback, error)
	Skip(ctx context.Context, mode models.Mode) (models.Feedback, error)
	Reveal(ctx context.Context, mode models.Mode) (models.Prompt, error)
	Confirm(ctx context.Context, mode models.Mode, remembered bool) (models.Feedback, error)
	Stats(ctx context.Context, mode models.Mode) (models.SessionStats, error)
	Abandon(ctx context.Context, mode models.Mode) error
}

type activeSession struct {
	ctrl       drill.Controller
	generation uint64
}

type drillService struct {
	lib      *Library
	rng      *rand.Rand
	sessions map[models.Mode]*activeSession
}

// NewDrillService creates a new DrillService. Every session draws its own
// generator from rng; a nil rng is seeded randomly.
func NewDrillService(lib *Library, rng *rand.Rand) DrillService {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &drillService{
		lib:      lib,
		rng:      rng,
		sessions: make(map[models.Mode]*activeSession),
	}
}

func (s *drillService) Start(ctx context.Context, mode models.Mode) (models.Prompt, error) {
	log := logger.FromContext(ctx).WithField("mode", mode)

	var prompt models.Prompt
	err := s.lib.with(func(st *store.Store) error {
		ctrl, err := drill.New(mode, st, rand.New(rand.NewPCG(s.rng.Uint64(), s.rng.Uint64())))
		if err != nil {
			return err
		}
		prompt, err = ctrl.Start(ctx)
		if err != nil {
			return err
		}
		if prev, ok := s.sessions[mode]; ok {
			log.Debug("replacing session %s", prev.ctrl.ID())
		}
		s.sessions[mode] = &activeSession{ctrl: ctrl, generation: s.lib.generation}
		return nil
	})
	if err != nil {
		return models.Prompt{}, err
	}
	log.Info("session %s started: %d words queued", prompt.SessionID, prompt.Remaining)
	return prompt, nil
}

// withSession runs fn on the live session of mode under the library lock.
func (s *drillService) withSession(mode models.Mode, fn func(drill.Controller) error) error {
	if _, err := models.ParseMode(string(mode)); err != nil {
		return err
	}
	return s.lib.with(func(*store.Store) error {
		sess, ok := s.sessions[mode]
		if !ok {
			return errors.NewNotFoundError("session", mode)
		}
		if sess.generation != s.lib.generation {
			delete(s.sessions, mode)
			return errors.NewConflictError("the deck was replaced; start a new " + string(mode) + " session")
		}
		return fn(sess.ctrl)
	})
}

func (s *drillService) Prompt(ctx context.Context, mode models.Mode) (models.Prompt, error) {
	var prompt models.Prompt
	err := s.withSession(mode, func(c drill.Controller) error {
		prompt = c.Prompt()
		return nil
	})
	return prompt, err
}

func (s *drillService) Submit(ctx context.Context, mode models.Mode, answer string) (models.Feedback, error) {
	var fb models.Feedback
	err := s.withSession(mode, func(c drill.Controller) error {
		var err error
		fb, err = c.Submit(ctx, answer)
		return err
	})
	return fb, err
}

func (s *drillService) Skip(ctx context.Context, mode models.Mode) (models.Feedback, error) {
	var fb models.Feedback
	err := s.withSession(mode, func(c drill.Controller) error {
		var err error
		fb, err = c.Skip(ctx)
		return err
	})
	return fb, err
}

func (s *drillService) Reveal(ctx context.Context, mode models.Mode) (models.Prompt, error) {
	var prompt models.Prompt
	err := s.withSession(mode, func(c drill.Controller) error {
		var err error
		prompt, err = c.Reveal(ctx)
		return err
	})
	return prompt, err
}

func (s *drillService) Confirm(ctx context.Context, mode models.Mode, remembered bool) (models.Feedback, error) {
	var fb models.Feedback
	err := s.withSession(mode, func(c drill.Controller) error {
		var err error
		fb, err = c.Confirm(ctx, remembered)
		return err
	})
	return fb, err
}

func (s *drillService) Stats(ctx context.Context, mode models.Mode) (models.SessionStats, error) {
	var stats models.SessionStats
	err := s.withSession(mode, func(c drill.Controller) error {
		stats = c.Stats()
		return nil
	})
	return stats, err
}

// Abandon drops the session of mode. Answers already given stay saved.
func (s *drillService) Abandon(ctx context.Context, mode models.Mode) error {
	if _, err := models.ParseMode(string(mode)); err != nil {
		return err
	}
	return s.lib.with(func(*store.Store) error {
		sess, ok := s.sessions[mode]
		if !ok {
			return errors.NewNotFoundError("session", mode)
		}
		delete(s.sessions, mode)
		logger.FromContext(ctx).WithField("mode", mode).Info("session %s abandoned", sess.ctrl.ID())
		return nil
	})
}

// Package progression holds the mastery transition rules. Every function takes
// a record by value and returns the updated copy together with what the
// session queue should do with it; persistence is the caller's job.
package progression

import "github.com/vytor/wordflash/internal/models"

// Effect tells the session queue where the answered record goes next.
type Effect int

const (
	// Drop leaves the record out of the rest of the session.
	Drop Effect = iota
	// Requeue pushes the record to the back of the queue.
	Requeue
	// RequeueRotate pushes to the back, then rotates the queue until a
	// stage-1 record is at the front or every record was visited once.
	RequeueRotate
)

func (e Effect) String() string {
	switch e {
	case Drop:
		return "drop"
	case Requeue:
		return "requeue"
	case RequeueRotate:
		return "requeue_rotate"
	}
	return "unknown"
}

func promote(w *models.WordRecord) {
	w.Stage = models.ClampStage(w.Stage + 1)
}

func demote(w *models.WordRecord) {
	w.Stage = models.ClampStage(w.Stage - 1)
	w.Attempts++
}

func reset(w *models.WordRecord) {
	w.Stage = models.MinStage
	w.Attempts++
}

// LearnChoice applies a stage-1 multiple-choice answer. The record is always requeued.
func LearnChoice(w models.WordRecord, correct bool) (models.WordRecord, Effect) {
	if correct {
		promote(&w)
	} else {
		demote(&w)
	}
	return w, Requeue
}

// LearnRecallConfirm applies the stage-2 confirmation exit: "next" when
// remembered, "I misremembered" otherwise.
func LearnRecallConfirm(w models.WordRecord, remembered bool) (models.WordRecord, Effect) {
	if remembered {
		promote(&w)
	} else {
		reset(&w)
	}
	return w, Requeue
}

// LearnDontKnow applies the stage-2 "don't know" tap.
func LearnDontKnow(w models.WordRecord) (models.WordRecord, Effect) {
	demote(&w)
	return w, RequeueRotate
}

// LearnSpelling applies a stage-3 spelling attempt. A correct spelling
// finishes the word for this session.
func LearnSpelling(w models.WordRecord, correct bool) (models.WordRecord, Effect) {
	if correct {
		w.Learned = true
		w.Stage = models.ClampStage(w.Stage)
		return w, Drop
	}
	w.Learned = false
	reset(&w)
	return w, Requeue
}

// LearnGiveUp is the stage-3 "I don't know" exit.
func LearnGiveUp(w models.WordRecord) (models.WordRecord, Effect) {
	return LearnSpelling(w, false)
}

// ReviewDontKnow applies "don't know" in the review recognition phase.
func ReviewDontKnow(w models.WordRecord) (models.WordRecord, Effect) {
	reset(&w)
	return w, Requeue
}

// ReviewSpelling applies a review spelling attempt. Review is cyclical, so the
// record is requeued on success as well.
func ReviewSpelling(w models.WordRecord, correct bool) (models.WordRecord, Effect) {
	if correct {
		w.Learned = true
		w.Reviewed = true
		promote(&w)
	} else {
		reset(&w)
	}
	return w, Requeue
}

// TestSpelling applies a test answer. Wrong answers leave the record untouched
// and are not retried within the session.
func TestSpelling(w models.WordRecord, correct bool) (models.WordRecord, Effect) {
	if correct {
		w.Tested = true
	}
	return w, Drop
}

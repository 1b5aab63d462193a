// Package session builds and manages the per-mode queue of words a drill
// session works through.
package session

import "github.com/vytor/wordflash/internal/models"

// Queue is a double-ended sequence of store records consumed from the front.
// It holds references: mutating a popped record mutates the store.
type Queue struct {
	items []*models.WordRecord
}

// NewQueue wraps records in a queue, front first.
func NewQueue(records []*models.WordRecord) *Queue {
	items := make([]*models.WordRecord, len(records))
	copy(items, records)
	return &Queue{items: items}
}

func (q *Queue) Len() int {
	return len(q.items)
}

func (q *Queue) Empty() bool {
	return len(q.items) == 0
}

// PopFront removes and returns the front record, or nil when empty.
func (q *Queue) PopFront() *models.WordRecord {
	if len(q.items) == 0 {
		return nil
	}
	w := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return w
}

// Peek returns the front record without removing it.
func (q *Queue) Peek() *models.WordRecord {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

func (q *Queue) PushBack(w *models.WordRecord) {
	q.items = append(q.items, w)
}

// RotateUntilStageOne moves front records to the back until a stage-1 record
// is at the front. It gives up after one full pass, so a queue without any
// stage-1 record ends where it started.
func (q *Queue) RotateUntilStageOne() int {
	size := len(q.items)
	rotated := 0
	for rotated < size {
		if q.items[0].Stage == models.MinStage {
			break
		}
		q.PushBack(q.PopFront())
		rotated++
	}
	return rotated
}

// Items returns a copy of the queue contents, front first.
func (q *Queue) Items() []*models.WordRecord {
	out := make([]*models.WordRecord, len(q.items))
	copy(out, q.items)
	return out
}

// Clone returns an independent queue over the same records.
func (q *Queue) Clone() *Queue {
	return NewQueue(q.items)
}

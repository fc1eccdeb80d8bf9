// Package transcript holds the append-only conversation history and
// the registry of corrections the learner has confirmed. Both live for
// the duration of the process only.
package transcript

import (
	"fmt"
	"sync"

	"github.com/sencheck/sencheck/internal/annotate"
)

// TurnID identifies a turn. IDs are assigned at creation and increase
// monotonically for the life of the process, across resets, so a
// late-arriving detection for a dropped turn can never land on a turn
// created after the reset.
type TurnID uint64

// Origin tells whether a turn was typed/spoken by the learner or
// generated by applying a correction.
type Origin string

const (
	OriginUser       Origin = "user"
	OriginCorrection Origin = "correction"
)

// DetectionStatus is the lifecycle of a turn's error annotation.
// It only ever moves Pending -> Ready or Pending -> Failed.
type DetectionStatus string

const (
	DetectionPending DetectionStatus = "pending"
	DetectionReady   DetectionStatus = "ready"
	DetectionFailed  DetectionStatus = "failed"
)

// Detection carries a turn's annotation state. Errors is only
// meaningful once Status is ready; a failed detection keeps an empty
// set so the turn simply renders unannotated.
type Detection struct {
	Status DetectionStatus
	Errors annotate.ErrorSet
}

// Turn is one entry in the conversation. Text, Origin and ID are
// immutable once created; only Detection is updated, and only by
// the store.
type Turn struct {
	ID        TurnID
	Text      string
	Origin    Origin
	Detection Detection
}

// Store is the append-only history of turns. A correction is a new
// turn, never an edit of the erroneous one.
type Store struct {
	mu     sync.RWMutex
	turns  []Turn
	nextID TurnID
}

// NewStore creates an empty history.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// Append adds a turn and returns its ID. User turns start with
// detection pending; correction turns are considered resolved at
// creation and get a ready, empty detection.
func (s *Store) Append(text string, origin Origin) TurnID {
	s.mu.Lock()
	defer s.mu.Unlock()

	det := Detection{Status: DetectionPending}
	if origin == OriginCorrection {
		det = Detection{Status: DetectionReady}
	}

	id := s.nextID
	s.nextID++
	s.turns = append(s.turns, Turn{
		ID:        id,
		Text:      text,
		Origin:    origin,
		Detection: det,
	})
	return id
}

// Get returns a copy of the turn with the given ID.
func (s *Store) Get(id TurnID) (Turn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.turns {
		if t.ID == id {
			return t, true
		}
	}
	return Turn{}, false
}

// Turns returns a copy of the history in creation order.
func (s *Store) Turns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of turns.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// SetDetection resolves a pending detection. The transition is one
// way: a turn that is already ready or failed is never overwritten.
func (s *Store) SetDetection(id TurnID, det Detection) error {
	if det.Status == DetectionPending {
		return fmt.Errorf("cannot set detection back to pending for turn %d", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.turns {
		if s.turns[i].ID != id {
			continue
		}
		if s.turns[i].Detection.Status != DetectionPending {
			return fmt.Errorf("turn %d detection already resolved", id)
		}
		s.turns[i].Detection = det
		return nil
	}
	return fmt.Errorf("unknown turn %d", id)
}

// Reset drops all turns. The ID sequence keeps counting.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}

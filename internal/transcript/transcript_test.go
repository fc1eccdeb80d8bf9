package transcript

import (
	"testing"

	"github.com/sencheck/sencheck/internal/annotate"
)

func TestStoreAppend(t *testing.T) {
	s := NewStore()

	id1 := s.Append("first", OriginUser)
	id2 := s.Append("second", OriginUser)
	if id2 <= id1 {
		t.Errorf("ids not increasing: %d then %d", id1, id2)
	}

	turn, ok := s.Get(id1)
	if !ok {
		t.Fatal("turn not found")
	}
	if turn.Text != "first" || turn.Origin != OriginUser {
		t.Errorf("unexpected turn: %+v", turn)
	}
	if turn.Detection.Status != DetectionPending {
		t.Errorf("user turn should start pending, got %s", turn.Detection.Status)
	}
}

func TestStoreCorrectionTurnsStartResolved(t *testing.T) {
	s := NewStore()
	id := s.Append("I feel happy", OriginCorrection)

	turn, _ := s.Get(id)
	if turn.Detection.Status != DetectionReady {
		t.Errorf("correction turn should be ready at creation, got %s", turn.Detection.Status)
	}
	if !turn.Detection.Errors.Empty() {
		t.Errorf("correction turn should carry no errors: %+v", turn.Detection.Errors)
	}
}

func TestStoreSetDetection(t *testing.T) {
	s := NewStore()
	id := s.Append("I feel hapy", OriginUser)

	set := annotate.ErrorSet{Spelling: []annotate.ErrorItem{{ErrorText: "hapy", TargetHint: "happy"}}}
	if err := s.SetDetection(id, Detection{Status: DetectionReady, Errors: set}); err != nil {
		t.Fatalf("SetDetection failed: %v", err)
	}

	turn, _ := s.Get(id)
	if turn.Detection.Status != DetectionReady || len(turn.Detection.Errors.Spelling) != 1 {
		t.Errorf("detection not applied: %+v", turn.Detection)
	}

	// Resolution is one way
	if err := s.SetDetection(id, Detection{Status: DetectionFailed}); err == nil {
		t.Error("expected error overwriting a resolved detection")
	}
	if err := s.SetDetection(id, Detection{Status: DetectionPending}); err == nil {
		t.Error("expected error reverting to pending")
	}
	if err := s.SetDetection(999, Detection{Status: DetectionReady}); err == nil {
		t.Error("expected error for unknown turn")
	}
}

func TestStoreTurnsReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Append("original", OriginUser)

	turns := s.Turns()
	turns[0].Text = "mutated"

	again := s.Turns()
	if again[0].Text != "original" {
		t.Error("Turns exposed internal state")
	}
}

func TestStoreResetKeepsIDSequence(t *testing.T) {
	s := NewStore()
	first := s.Append("one", OriginUser)

	s.Reset()
	if s.Len() != 0 {
		t.Fatalf("reset store should be empty, has %d", s.Len())
	}

	next := s.Append("two", OriginUser)
	if next <= first {
		t.Errorf("ids must keep increasing across reset: %d then %d", first, next)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	r.Put("hapy", "happy")
	if got, ok := r.Get("hapy"); !ok || got != "happy" {
		t.Errorf("Get(hapy) = %q, %v", got, ok)
	}

	// Overwrite only, never append duplicates
	r.Put("hapy", "happier")
	if got, _ := r.Get("hapy"); got != "happier" {
		t.Errorf("overwrite failed: %q", got)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", r.Len())
	}

	all := r.All()
	all["hapy"] = "tampered"
	if got, _ := r.Get("hapy"); got != "happier" {
		t.Error("All exposed internal state")
	}

	r.Reset()
	if r.Len() != 0 {
		t.Errorf("reset registry should be empty, has %d", r.Len())
	}
}

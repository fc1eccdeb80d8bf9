package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sencheck/sencheck/internal/annotate"
	"github.com/sencheck/sencheck/internal/suggest"
	"github.com/sencheck/sencheck/internal/testutil"
	"github.com/sencheck/sencheck/internal/transcript"
)

func exampleErrorSet() annotate.ErrorSet {
	return annotate.ErrorSet{
		Spelling:   []annotate.ErrorItem{{ErrorText: "hapy", TargetHint: "happy"}},
		Incomplete: []annotate.ErrorItem{{ErrorText: "grad", TargetHint: "graduate"}},
	}
}

func newTestEngine(t *testing.T, det *testutil.MockDetector, sug *testutil.MockSuggester) *Engine {
	t.Helper()
	e := New(Config{
		Detector:       det,
		Suggester:      sug,
		RequestTimeout: 2 * time.Second,
	})
	t.Cleanup(e.Close)
	return e
}

func waitDetected(t *testing.T, e *Engine, id transcript.TurnID) {
	t.Helper()
	testutil.WaitForCondition(t, func() bool {
		turn, ok := e.store.Get(id)
		return ok && turn.Detection.Status != transcript.DetectionPending
	}, 2*time.Second)
}

func waitPresenting(t *testing.T, e *Engine) {
	t.Helper()
	testutil.WaitForCondition(t, func() bool {
		view, ok := e.Session()
		return ok && view.State == Presenting
	}, 2*time.Second)
}

func TestSubmitTriggersDetection(t *testing.T) {
	det := &testutil.MockDetector{
		DetectFunc: func(ctx context.Context, text string) (annotate.ErrorSet, error) {
			return exampleErrorSet(), nil
		},
	}
	e := newTestEngine(t, det, &testutil.MockSuggester{})

	id, err := e.SubmitText("I feel hapy for your grad")
	if err != nil {
		t.Fatalf("SubmitText failed: %v", err)
	}
	waitDetected(t, e, id)

	turns := e.Turns()
	if len(turns) != 1 {
		t.Fatalf("expected 1 turn, got %d", len(turns))
	}
	if turns[0].Detection.Status != transcript.DetectionReady {
		t.Errorf("expected ready detection, got %s", turns[0].Detection.Status)
	}
	if len(turns[0].Detection.Errors.Spelling) != 1 {
		t.Errorf("detection result not applied: %+v", turns[0].Detection.Errors)
	}
}

func TestSubmitEmptyText(t *testing.T) {
	e := newTestEngine(t, &testutil.MockDetector{}, &testutil.MockSuggester{})

	if _, err := e.SubmitText("   "); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation, got %v", err)
	}
	if len(e.Turns()) != 0 {
		t.Error("rejected submit must not mutate history")
	}
}

func TestDetectionFailureDegrades(t *testing.T) {
	det := &testutil.MockDetector{
		DetectFunc: func(ctx context.Context, text string) (annotate.ErrorSet, error) {
			return annotate.ErrorSet{}, fmt.Errorf("network down")
		},
	}
	e := newTestEngine(t, det, &testutil.MockSuggester{})

	id, _ := e.SubmitText("I feel hapy")
	waitDetected(t, e, id)

	turn, _ := e.store.Get(id)
	if turn.Detection.Status != transcript.DetectionFailed {
		t.Fatalf("expected failed detection, got %s", turn.Detection.Status)
	}

	// Failed detection renders unannotated, not as an error
	spans, err := e.Spans(id)
	if err != nil {
		t.Fatalf("Spans on failed detection: %v", err)
	}
	if len(spans) != 0 {
		t.Errorf("expected no spans, got %+v", spans)
	}
}

func TestSpansBeforeDetectionCompletes(t *testing.T) {
	release := make(chan struct{})
	det := &testutil.MockDetector{
		DetectFunc: func(ctx context.Context, text string) (annotate.ErrorSet, error) {
			<-release
			return annotate.ErrorSet{}, nil
		},
	}
	e := newTestEngine(t, det, &testutil.MockSuggester{})
	defer close(release)

	id, _ := e.SubmitText("I feel hapy")
	if _, err := e.Spans(id); !errors.Is(err, ErrDetectionPending) {
		t.Errorf("expected ErrDetectionPending, got %v", err)
	}
	if _, err := e.Spans(999); !errors.Is(err, ErrUnknownTurn) {
		t.Errorf("expected ErrUnknownTurn, got %v", err)
	}
}

func TestCorrectionFlow(t *testing.T) {
	det := &testutil.MockDetector{
		DetectFunc: func(ctx context.Context, text string) (annotate.ErrorSet, error) {
			return exampleErrorSet(), nil
		},
	}
	sug := &testutil.MockSuggester{
		SuggestFunc: func(ctx context.Context, req suggest.Request) ([]string, error) {
			return []string{"happy", "happily", "happier"}, nil
		},
	}
	e := newTestEngine(t, det, sug)

	id, _ := e.SubmitText("I feel hapy for your grad")
	waitDetected(t, e, id)

	if err := e.SelectSpan(id, "hapy", annotate.Spelling); err != nil {
		t.Fatalf("SelectSpan failed: %v", err)
	}
	waitPresenting(t, e)

	view, _ := e.Session()
	if view.ErrorText != "hapy" || view.Category != "spelling" || view.ContextText != "I feel hapy for your grad" {
		t.Errorf("unexpected session: %+v", view)
	}
	if len(view.Candidates) != suggest.SlotCount || view.Candidates[0] != "happy" {
		t.Errorf("unexpected candidates: %v", view.Candidates)
	}

	if err := e.PickCandidate(0); err != nil {
		t.Fatalf("PickCandidate failed: %v", err)
	}
	if err := e.ConfirmSelection(); err != nil {
		t.Fatalf("ConfirmSelection failed: %v", err)
	}

	turns := e.Turns()
	if len(turns) != 2 {
		t.Fatalf("confirm must append exactly one turn, got %d", len(turns))
	}
	if turns[0].Text != "I feel hapy for your grad" {
		t.Error("confirm mutated an existing turn")
	}
	corrected := turns[1]
	if corrected.Text != "I feel happy for your grad" {
		t.Errorf("corrected text = %q", corrected.Text)
	}
	if corrected.Origin != transcript.OriginCorrection {
		t.Errorf("corrected origin = %s", corrected.Origin)
	}

	if got := e.CorrectedErrors()["hapy"]; got != "happy" {
		t.Errorf("registry entry = %q, want happy", got)
	}
	if _, ok := e.Session(); ok {
		t.Error("session should end on confirm")
	}

	// Correction turns never trigger detection
	time.Sleep(50 * time.Millisecond)
	if calls := det.Calls(); len(calls) != 1 {
		t.Errorf("expected 1 detection call, got %d: %v", len(calls), calls)
	}
}

func TestPickAndConfirmValidation(t *testing.T) {
	det := &testutil.MockDetector{
		DetectFunc: func(ctx context.Context, text string) (annotate.ErrorSet, error) {
			return exampleErrorSet(), nil
		},
	}
	sug := &testutil.MockSuggester{
		SuggestFunc: func(ctx context.Context, req suggest.Request) ([]string, error) {
			return []string{"only"}, nil // padded to ["only", "", ""]
		},
	}
	e := newTestEngine(t, det, sug)

	if err := e.PickCandidate(0); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("pick without session: %v", err)
	}
	if err := e.ConfirmSelection(); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("confirm without session: %v", err)
	}

	id, _ := e.SubmitText("I feel hapy for your grad")
	waitDetected(t, e, id)
	if err := e.SelectSpan(id, "hapy", annotate.Spelling); err != nil {
		t.Fatal(err)
	}
	waitPresenting(t, e)

	if err := e.ConfirmSelection(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("confirm without a pick: %v", err)
	}
	if err := e.PickCandidate(1); !errors.Is(err, ErrEmptyCandidate) {
		t.Errorf("picking a padded slot: %v", err)
	}
	if err := e.PickCandidate(7); !errors.Is(err, ErrEmptyCandidate) {
		t.Errorf("picking out of range: %v", err)
	}
	if len(e.Turns()) != 1 {
		t.Error("rejected operations must not mutate history")
	}
}

func TestSelectSpanValidation(t *testing.T) {
	det := &testutil.MockDetector{
		DetectFunc: func(ctx context.Context, text string) (annotate.ErrorSet, error) {
			return exampleErrorSet(), nil
		},
	}
	e := newTestEngine(t, det, &testutil.MockSuggester{})

	id, _ := e.SubmitText("I feel hapy for your grad")
	waitDetected(t, e, id)

	if err := e.SelectSpan(id, "nope", annotate.Spelling); !errors.Is(err, ErrUnknownSpan) {
		t.Errorf("unknown error text: %v", err)
	}
	// "hapy" was reported as spelling; clicking it as context must miss
	if err := e.SelectSpan(id, "hapy", annotate.Context); !errors.Is(err, ErrUnknownSpan) {
		t.Errorf("wrong category: %v", err)
	}
	if _, ok := e.Session(); ok {
		t.Error("failed select must not start a session")
	}
}

func TestStaleSuggestionsDropped(t *testing.T) {
	det := &testutil.MockDetector{
		DetectFunc: func(ctx context.Context, text string) (annotate.ErrorSet, error) {
			return exampleErrorSet(), nil
		},
	}

	release := make(chan struct{})
	sug := &testutil.MockSuggester{
		SuggestFunc: func(ctx context.Context, req suggest.Request) ([]string, error) {
			if req.ErrorText == "hapy" {
				<-release
				return []string{"stale1", "stale2", "stale3"}, nil
			}
			return []string{"graduate", "graduation", "grade"}, nil
		},
	}
	e := newTestEngine(t, det, sug)

	id, _ := e.SubmitText("I feel hapy for your grad")
	waitDetected(t, e, id)

	// First click: response will hang until released
	if err := e.SelectSpan(id, "hapy", annotate.Spelling); err != nil {
		t.Fatal(err)
	}
	view, _ := e.Session()
	if view.State != AwaitingSuggestions {
		t.Fatalf("expected awaiting state, got %s", view.State)
	}

	// Second click replaces the session; the hapy response is now stale
	if err := e.SelectSpan(id, "grad", annotate.Incomplete); err != nil {
		t.Fatal(err)
	}
	waitPresenting(t, e)

	close(release)
	time.Sleep(50 * time.Millisecond)

	view, ok := e.Session()
	if !ok || view.ErrorText != "grad" {
		t.Fatalf("live session lost: %+v", view)
	}
	if view.Candidates[0] != "graduate" {
		t.Errorf("stale response overwrote live candidates: %v", view.Candidates)
	}
}

func TestRegenerate(t *testing.T) {
	det := &testutil.MockDetector{
		DetectFunc: func(ctx context.Context, text string) (annotate.ErrorSet, error) {
			return exampleErrorSet(), nil
		},
	}

	call := 0
	sug := &testutil.MockSuggester{}
	sug.SuggestFunc = func(ctx context.Context, req suggest.Request) ([]string, error) {
		call++
		if call == 1 {
			return []string{"happy", "happily", "happier"}, nil
		}
		return []string{"glad", "cheerful", "pleased"}, nil
	}
	e := newTestEngine(t, det, sug)

	if err := e.Regenerate(); !errors.Is(err, ErrNoSession) {
		t.Errorf("regenerate without session: %v", err)
	}

	id, _ := e.SubmitText("I feel hapy for your grad")
	waitDetected(t, e, id)
	if err := e.SelectSpan(id, "hapy", annotate.Spelling); err != nil {
		t.Fatal(err)
	}
	waitPresenting(t, e)
	if err := e.PickCandidate(0); err != nil {
		t.Fatal(err)
	}

	if err := e.Regenerate(); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	waitPresenting(t, e)

	view, _ := e.Session()
	if view.Candidates[0] != "glad" {
		t.Errorf("expected fresh candidates, got %v", view.Candidates)
	}
	if view.Selected != "" {
		t.Errorf("regeneration must clear the selection, got %q", view.Selected)
	}

	calls := sug.Calls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 suggestion calls, got %d", len(calls))
	}
	if calls[0] != calls[1] {
		t.Errorf("regenerate must retry the same request: %+v vs %+v", calls[0], calls[1])
	}
}

func TestSuggestionFailureIsRecoverable(t *testing.T) {
	det := &testutil.MockDetector{
		DetectFunc: func(ctx context.Context, text string) (annotate.ErrorSet, error) {
			return exampleErrorSet(), nil
		},
	}

	call := 0
	sug := &testutil.MockSuggester{}
	sug.SuggestFunc = func(ctx context.Context, req suggest.Request) ([]string, error) {
		call++
		if call == 1 {
			return nil, fmt.Errorf("rate limited")
		}
		return []string{"happy", "happily", "happier"}, nil
	}
	e := newTestEngine(t, det, sug)

	id, _ := e.SubmitText("I feel hapy for your grad")
	waitDetected(t, e, id)
	if err := e.SelectSpan(id, "hapy", annotate.Spelling); err != nil {
		t.Fatal(err)
	}

	testutil.WaitForCondition(t, func() bool {
		view, ok := e.Session()
		return ok && view.Failed
	}, 2*time.Second)

	view, _ := e.Session()
	if view.State != AwaitingSuggestions {
		t.Errorf("failed session should stay awaiting, got %s", view.State)
	}
	for _, c := range view.Candidates {
		if c != "" {
			t.Errorf("failed session should present empty slots, got %v", view.Candidates)
		}
	}

	if err := e.Regenerate(); err != nil {
		t.Fatalf("Regenerate after failure: %v", err)
	}
	waitPresenting(t, e)
}

func TestRegistryPersistsAcrossCorrections(t *testing.T) {
	det := &testutil.MockDetector{
		DetectFunc: func(ctx context.Context, text string) (annotate.ErrorSet, error) {
			return exampleErrorSet(), nil
		},
	}
	sug := &testutil.MockSuggester{
		SuggestFunc: func(ctx context.Context, req suggest.Request) ([]string, error) {
			return []string{"happy", "graduate", "x"}, nil
		},
	}
	e := newTestEngine(t, det, sug)

	id, _ := e.SubmitText("I feel hapy for your grad")
	waitDetected(t, e, id)

	confirm := func(errorText string, cat annotate.Category, slot int) {
		t.Helper()
		if err := e.SelectSpan(id, errorText, cat); err != nil {
			t.Fatal(err)
		}
		waitPresenting(t, e)
		if err := e.PickCandidate(slot); err != nil {
			t.Fatal(err)
		}
		if err := e.ConfirmSelection(); err != nil {
			t.Fatal(err)
		}
	}

	confirm("hapy", annotate.Spelling, 0)
	confirm("grad", annotate.Incomplete, 1)

	reg := e.CorrectedErrors()
	if reg["hapy"] != "happy" {
		t.Errorf("first entry lost after later correction: %v", reg)
	}
	if reg["grad"] != "graduate" {
		t.Errorf("second entry missing: %v", reg)
	}
}

func TestReset(t *testing.T) {
	det := &testutil.MockDetector{
		DetectFunc: func(ctx context.Context, text string) (annotate.ErrorSet, error) {
			return exampleErrorSet(), nil
		},
	}
	sug := &testutil.MockSuggester{
		SuggestFunc: func(ctx context.Context, req suggest.Request) ([]string, error) {
			return []string{"happy", "happily", "happier"}, nil
		},
	}
	e := newTestEngine(t, det, sug)

	id, _ := e.SubmitText("I feel hapy for your grad")
	waitDetected(t, e, id)
	if err := e.SelectSpan(id, "hapy", annotate.Spelling); err != nil {
		t.Fatal(err)
	}
	waitPresenting(t, e)
	if err := e.PickCandidate(0); err != nil {
		t.Fatal(err)
	}
	if err := e.ConfirmSelection(); err != nil {
		t.Fatal(err)
	}

	e.Reset()

	if len(e.Turns()) != 0 {
		t.Error("reset must clear history")
	}
	if len(e.CorrectedErrors()) != 0 {
		t.Error("reset must clear the registry")
	}
	if view, ok := e.Session(); ok || view.State != Idle {
		t.Errorf("reset must drop the session: %+v", view)
	}
}

func TestLateDetectionAfterResetIsDropped(t *testing.T) {
	release := make(chan struct{})
	det := &testutil.MockDetector{
		DetectFunc: func(ctx context.Context, text string) (annotate.ErrorSet, error) {
			<-release
			return exampleErrorSet(), nil
		},
	}
	e := newTestEngine(t, det, &testutil.MockSuggester{})

	e.SubmitText("I feel hapy")
	e.Reset()
	close(release)

	time.Sleep(50 * time.Millisecond)
	if n := len(e.Turns()); n != 0 {
		t.Errorf("late detection resurrected %d turns", n)
	}
}

// Package engine drives the sentence-correction loop: it owns the
// conversation history, requests error annotations for every submitted
// sentence, runs the per-error suggestion workflow and applies
// confirmed corrections back into the transcript.
//
// All state transitions happen under one mutex, so user actions and
// external-service completions never interleave. Service calls run in
// their own goroutines and re-validate against current state before
// applying their result: a suggestion response must present the live
// session's token, and a detection response targets its own turn only.
package engine

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/sencheck/sencheck/internal/annotate"
	"github.com/sencheck/sencheck/internal/notify"
	"github.com/sencheck/sencheck/internal/span"
	"github.com/sencheck/sencheck/internal/suggest"
	"github.com/sencheck/sencheck/internal/transcript"
)

// Config wires the engine's collaborators. Detector and Suggester are
// required; Registry and Notifier default to fresh/no-op values.
type Config struct {
	Detector       annotate.Detector
	Suggester      suggest.Suggester
	Registry       *transcript.Registry
	Notifier       notify.Notifier
	RequestTimeout time.Duration
}

const defaultRequestTimeout = 30 * time.Second

// Engine is the correction engine. Create with New, release with Close.
type Engine struct {
	mu sync.Mutex

	store     *transcript.Store
	registry  *transcript.Registry
	detector  annotate.Detector
	suggester suggest.Suggester
	notifier  notify.Notifier
	timeout   time.Duration

	session   *session
	nextToken uint64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an engine with an empty history.
func New(cfg Config) *Engine {
	if cfg.Registry == nil {
		cfg.Registry = transcript.NewRegistry()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Nop{}
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		store:     transcript.NewStore(),
		registry:  cfg.Registry,
		detector:  cfg.Detector,
		suggester: cfg.Suggester,
		notifier:  cfg.Notifier,
		timeout:   cfg.RequestTimeout,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Close cancels in-flight service calls and waits for their handlers.
func (e *Engine) Close() {
	e.cancel()
	e.wg.Wait()
}

// SubmitText appends a user turn and kicks off error detection for it.
func (e *Engine) SubmitText(text string) (transcript.TurnID, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptyText
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.store.Append(text, transcript.OriginUser)
	e.wg.Add(1)
	go e.runDetection(id, text)
	return id, nil
}

// runDetection asks the detection service to annotate one turn. Any
// failure degrades to a failed detection with an empty error set; the
// turn renders unannotated and the transcript is never blocked.
func (e *Engine) runDetection(id transcript.TurnID, text string) {
	defer e.wg.Done()

	ctx, cancel := context.WithTimeout(e.ctx, e.timeout)
	defer cancel()

	set, err := e.detector.Detect(ctx, text)
	det := transcript.Detection{Status: transcript.DetectionReady, Errors: set}
	if err != nil {
		log.Printf("engine: detection for turn %d failed: %v", id, err)
		det = transcript.Detection{Status: transcript.DetectionFailed}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.SetDetection(id, det); err != nil {
		// Turn gone after a reset, or already resolved. Drop quietly.
		log.Printf("engine: dropping detection result: %v", err)
		return
	}
	go e.notifier.DetectionFinished(id, det.Status == transcript.DetectionReady, countErrors(set))
}

func countErrors(set annotate.ErrorSet) int {
	return len(set.Spelling) + len(set.Incomplete) + len(set.Context)
}

// Turns returns the conversation history in creation order.
func (e *Engine) Turns() []transcript.Turn {
	return e.store.Turns()
}

// Spans resolves the clickable spans for a turn. A failed detection
// yields no spans; a pending one is an error, since rendering must not
// annotate a turn before its detection result has been applied.
func (e *Engine) Spans(id transcript.TurnID) ([]span.Span, error) {
	turn, ok := e.store.Get(id)
	if !ok {
		return nil, ErrUnknownTurn
	}
	switch turn.Detection.Status {
	case transcript.DetectionPending:
		return nil, ErrDetectionPending
	case transcript.DetectionFailed:
		return nil, nil
	}
	return span.Resolve(turn.Text, turn.Detection.Errors), nil
}

// SelectSpan starts a suggestion session for one of a turn's resolved
// spans. Any session already live is discarded without confirmation,
// and its in-flight response, if any, becomes stale.
func (e *Engine) SelectSpan(id transcript.TurnID, errorText string, category annotate.Category) error {
	spans, err := e.Spans(id)
	if err != nil {
		return err
	}

	var target *span.Span
	for i := range spans {
		if spans[i].ErrorText == errorText && spans[i].Category == category {
			target = &spans[i]
			break
		}
	}
	if target == nil {
		return ErrUnknownSpan
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextToken++
	e.session = &session{
		token: e.nextToken,
		req: suggest.Request{
			ErrorText:   target.ErrorText,
			Category:    target.Category,
			ContextText: target.SourceText,
		},
		state: AwaitingSuggestions,
	}
	e.requestSuggestionsLocked()
	return nil
}

// Regenerate re-issues the live session's suggestion request with the
// same error, category and context. Valid while presenting, and after
// a failed request left the session awaiting with no candidates.
func (e *Engine) Regenerate() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return ErrNoSession
	}

	e.nextToken++
	e.session.token = e.nextToken // outstanding responses become stale
	e.session.state = AwaitingSuggestions
	e.session.candidates = nil
	e.session.selected = ""
	e.session.failed = false
	e.requestSuggestionsLocked()
	return nil
}

// requestSuggestionsLocked launches the suggestion call for the
// current session. Caller holds e.mu.
func (e *Engine) requestSuggestionsLocked() {
	token := e.session.token
	req := e.session.req

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		ctx, cancel := context.WithTimeout(e.ctx, e.timeout)
		defer cancel()

		candidates, err := e.suggester.Suggest(ctx, req)

		e.mu.Lock()
		defer e.mu.Unlock()

		if e.session == nil || e.session.token != token {
			log.Printf("engine: dropping stale suggestions for %q (%s)", req.ErrorText, req.Category)
			return
		}

		if err != nil {
			log.Printf("engine: suggestions for %q (%s) failed: %v", req.ErrorText, req.Category, err)
			// Stay awaiting with empty slots; the learner can regenerate.
			e.session.candidates = suggest.Normalize(nil)
			e.session.selected = ""
			e.session.failed = true
			go e.notifier.Error("no suggestions available")
			return
		}

		e.session.candidates = suggest.Normalize(candidates)
		e.session.selected = ""
		e.session.failed = false
		e.session.state = Presenting
	}()
}

// PickCandidate marks one of the presented candidates as selected.
// Picking does not transition state; confirm does.
func (e *Engine) PickCandidate(i int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return ErrNoSession
	}
	if e.session.state != Presenting {
		return ErrNotPresenting
	}
	if i < 0 || i >= len(e.session.candidates) {
		return ErrEmptyCandidate
	}
	if e.session.candidates[i] == "" {
		return ErrEmptyCandidate
	}
	e.session.selected = e.session.candidates[i]
	return nil
}

// ConfirmSelection applies the selected candidate: the first
// occurrence of the error text in the session's context is replaced,
// the corrected sentence is appended as a new turn (no detection), and
// the registry remembers the choice. The session ends.
func (e *Engine) ConfirmSelection() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return ErrNoSession
	}
	if e.session.state != Presenting {
		return ErrNotPresenting
	}
	if e.session.selected == "" {
		return ErrNoSelection
	}

	errorText := e.session.req.ErrorText
	selected := e.session.selected
	corrected := strings.Replace(e.session.req.ContextText, errorText, selected, 1)

	id := e.store.Append(corrected, transcript.OriginCorrection)
	e.registry.Put(errorText, selected)
	e.session = nil

	go e.notifier.CorrectionApplied(id, errorText, selected)
	return nil
}

// Session returns a snapshot of the live suggestion session, if any.
func (e *Engine) Session() (SessionView, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return SessionView{State: Idle}, false
	}
	return e.session.view(), true
}

// CorrectedErrors exposes the registry contents to the UI layer.
func (e *Engine) CorrectedErrors() map[string]string {
	return e.registry.All()
}

// Reset clears the history, the registry and any live session.
// Responses still in flight find no matching turn or token and are
// dropped when they complete.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.store.Reset()
	e.registry.Reset()
	e.session = nil
}

package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidOperation marks a request that is rejected synchronously
// and mutates nothing: the engine is not in a state where the
// operation makes sense.
var ErrInvalidOperation = errors.New("invalid operation")

var (
	ErrEmptyText        = fmt.Errorf("%w: empty text", ErrInvalidOperation)
	ErrUnknownTurn      = fmt.Errorf("%w: unknown turn", ErrInvalidOperation)
	ErrDetectionPending = fmt.Errorf("%w: detection still pending", ErrInvalidOperation)
	ErrUnknownSpan      = fmt.Errorf("%w: no such span on this turn", ErrInvalidOperation)
	ErrNoSession        = fmt.Errorf("%w: no suggestion session", ErrInvalidOperation)
	ErrNotPresenting    = fmt.Errorf("%w: suggestions not presented yet", ErrInvalidOperation)
	ErrNoSelection      = fmt.Errorf("%w: no candidate selected", ErrInvalidOperation)
	ErrEmptyCandidate   = fmt.Errorf("%w: candidate slot is empty", ErrInvalidOperation)
)

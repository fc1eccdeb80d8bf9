package annotate

import (
	"context"
	"fmt"
)

// Category classifies a detected error.
type Category string

const (
	Spelling   Category = "spelling"
	Incomplete Category = "incomplete"
	Context    Category = "context"
)

// Categories lists all categories in precedence order (spelling wins
// over incomplete, incomplete over context, when the same error text
// is reported more than once).
var Categories = []Category{Spelling, Incomplete, Context}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case Spelling, Incomplete, Context:
		return true
	}
	return false
}

// ErrorItem is a single detected error: the offending text and the
// detector's hint for what it should become.
type ErrorItem struct {
	ErrorText  string `json:"error"`
	TargetHint string `json:"target"`
}

// ErrorSet holds the detected errors for one piece of text, keyed by
// category. A nil slice means no errors of that category.
type ErrorSet struct {
	Spelling   []ErrorItem `json:"spelling"`
	Incomplete []ErrorItem `json:"incomplete"`
	Context    []ErrorItem `json:"context"`
}

// Items returns the errors of the given category.
func (s ErrorSet) Items(c Category) []ErrorItem {
	switch c {
	case Spelling:
		return s.Spelling
	case Incomplete:
		return s.Incomplete
	case Context:
		return s.Context
	}
	return nil
}

// Empty reports whether no category has any errors.
func (s ErrorSet) Empty() bool {
	return len(s.Spelling) == 0 && len(s.Incomplete) == 0 && len(s.Context) == 0
}

// Find returns the item with the given error text in the given
// category.
func (s ErrorSet) Find(errorText string, c Category) (ErrorItem, bool) {
	for _, it := range s.Items(c) {
		if it.ErrorText == errorText {
			return it, true
		}
	}
	return ErrorItem{}, false
}

// Detector annotates text with categorized errors.
type Detector interface {
	Detect(ctx context.Context, text string) (ErrorSet, error)
}

// Config holds detection adapter configuration
type Config struct {
	Provider string
	APIKey   string
	Model    string
}

// NewDetector creates a detection adapter based on the provider
func NewDetector(cfg Config) (Detector, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		return NewOpenAIDetector(cfg), nil
	case "groq":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("Groq API key required")
		}
		return NewGroqDetector(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported detection provider: %s", cfg.Provider)
	}
}

package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/sencheck/sencheck/internal/annotate"
)

// SlotCount is the fixed number of candidate slots presented to the
// learner. Responses with fewer candidates are padded with empty
// strings, responses with more are truncated.
const SlotCount = 3

// Request identifies one suggestion lookup: the error being corrected
// and the full sentence it occurred in.
type Request struct {
	ErrorText   string
	Category    annotate.Category
	ContextText string
}

// Suggester produces replacement candidates for a detected error.
type Suggester interface {
	Suggest(ctx context.Context, req Request) ([]string, error)
}

// Config holds suggestion adapter configuration
type Config struct {
	Provider string
	APIKey   string
	Model    string
}

// NewSuggester creates a suggestion adapter based on the provider
func NewSuggester(cfg Config) (Suggester, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		return NewOpenAISuggester(cfg), nil
	case "groq":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("Groq API key required")
		}
		return NewGroqSuggester(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported suggestion provider: %s", cfg.Provider)
	}
}

// Normalize turns a raw candidate list into exactly SlotCount slots:
// trimmed, blanks dropped, truncated past SlotCount, padded with empty
// strings below it.
func Normalize(candidates []string) []string {
	out := make([]string, 0, SlotCount)
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		out = append(out, c)
		if len(out) == SlotCount {
			break
		}
	}
	for len(out) < SlotCount {
		out = append(out, "")
	}
	return out
}

// SplitCandidates parses the transport-level newline-delimited
// candidate list.
func SplitCandidates(payload string) []string {
	return strings.Split(payload, "\n")
}

// Package speech wraps the speech services at the engine's boundary:
// submit audio, get text back; submit text, get audio back. Nothing in
// here touches annotation state.
package speech

import (
	"context"
	"fmt"
)

// Transcriber turns recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// Synthesizer turns text into playable audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Config holds speech adapter configuration
type Config struct {
	Provider           string
	APIKey             string
	TranscriptionModel string
	SynthesisModel     string
	Voice              string
	Language           string
}

// NewTranscriber creates a speech-to-text adapter based on the provider
func NewTranscriber(cfg Config) (Transcriber, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		return NewOpenAIAdapter(cfg), nil
	case "groq":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("Groq API key required")
		}
		return NewGroqTranscriber(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported speech provider: %s", cfg.Provider)
	}
}

// NewSynthesizer creates a text-to-speech adapter based on the provider
func NewSynthesizer(cfg Config) (Synthesizer, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		return NewOpenAIAdapter(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported synthesis provider: %s", cfg.Provider)
	}
}

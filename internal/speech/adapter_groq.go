package speech

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"
)

// GroqTranscriber implements Transcriber on Groq's OpenAI-compatible
// Whisper endpoint. Groq has no synthesis endpoint.
type GroqTranscriber struct {
	client *openai.Client
	config Config
}

func NewGroqTranscriber(cfg Config) *GroqTranscriber {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = "https://api.groq.com/openai/v1"
	return &GroqTranscriber{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

func (a *GroqTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}

	model := a.config.TranscriptionModel
	if model == "" {
		model = "whisper-large-v3-turbo"
	}

	req := openai.AudioRequest{
		Model:    model,
		Reader:   bytes.NewReader(audio),
		FilePath: filename,
		Language: a.config.Language,
	}

	start := time.Now()
	resp, err := a.client.CreateTranscription(ctx, req)
	duration := time.Since(start)

	if err != nil {
		log.Printf("groq-speech: transcription failed after %v: %v", duration, err)
		return "", fmt.Errorf("groq transcription: %w", err)
	}

	log.Printf("groq-speech: transcribed %d bytes in %v: %q", len(audio), duration, resp.Text)
	return resp.Text, nil
}

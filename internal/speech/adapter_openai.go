package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIAdapter implements Transcriber and Synthesizer on OpenAI's
// audio endpoints (Whisper and TTS).
type OpenAIAdapter struct {
	client *openai.Client
	config Config
}

func NewOpenAIAdapter(cfg Config) *OpenAIAdapter {
	return &OpenAIAdapter{
		client: openai.NewClient(cfg.APIKey),
		config: cfg,
	}
}

func (a *OpenAIAdapter) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}

	model := a.config.TranscriptionModel
	if model == "" {
		model = "whisper-1"
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
		log.Printf("openai-speech: transcription failed after %v: %v", duration, err)
		return "", fmt.Errorf("openai transcription: %w", err)
	}

	log.Printf("openai-speech: transcribed %d bytes in %v: %q", len(audio), duration, resp.Text)
	return resp.Text, nil
}

func (a *OpenAIAdapter) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, nil
	}

	model := a.config.SynthesisModel
	if model == "" {
		model = string(openai.TTSModel1)
	}
	voice := a.config.Voice
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}

	req := openai.CreateSpeechRequest{
		Model: openai.SpeechModel(model),
		Input: text,
		Voice: openai.SpeechVoice(voice),
	}

	start := time.Now()
	resp, err := a.client.CreateSpeech(ctx, req)
	duration := time.Since(start)

	if err != nil {
		log.Printf("openai-speech: synthesis failed after %v: %v", duration, err)
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("openai speech: read audio: %w", err)
	}

	log.Printf("openai-speech: synthesized %d bytes in %v", len(audio), duration)
	return audio, nil
}

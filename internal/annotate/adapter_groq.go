package annotate

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"
)

// GroqDetector implements Detector using Groq's OpenAI-compatible API
type GroqDetector struct {
	client *openai.Client
	config Config
}

// NewGroqDetector creates a new Groq detection adapter
func NewGroqDetector(cfg Config) *GroqDetector {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = "https://api.groq.com/openai/v1"
	return &GroqDetector{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

func (a *GroqDetector) Detect(ctx context.Context, text string) (ErrorSet, error) {
	if text == "" {
		return ErrorSet{}, nil
	}

	model := a.config.Model
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: BuildSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0.2,
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		log.Printf("groq-detector: API call failed after %v: %v", duration, err)
		return ErrorSet{}, fmt.Errorf("groq chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return ErrorSet{}, fmt.Errorf("groq chat completion: no response choices")
	}

	set, err := ParseErrorSet(resp.Choices[0].Message.Content)
	if err != nil {
		log.Printf("groq-detector: bad payload after %v: %v", duration, err)
		return ErrorSet{}, err
	}

	log.Printf("groq-detector: annotated in %v: %q -> %d/%d/%d errors",
		duration, text, len(set.Spelling), len(set.Incomplete), len(set.Context))
	return set, nil
}

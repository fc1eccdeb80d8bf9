package annotate

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIDetector implements Detector using OpenAI's chat completions API
type OpenAIDetector struct {
	client *openai.Client
	config Config
}

// NewOpenAIDetector creates a new OpenAI detection adapter
func NewOpenAIDetector(cfg Config) *OpenAIDetector {
	return &OpenAIDetector{
		client: openai.NewClient(cfg.APIKey),
		config: cfg,
	}
}

func (a *OpenAIDetector) Detect(ctx context.Context, text string) (ErrorSet, error) {
	if text == "" {
		return ErrorSet{}, nil
	}

	model := a.config.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: BuildSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0.2, // Low temperature for consistent classification
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		log.Printf("openai-detector: API call failed after %v: %v", duration, err)
		return ErrorSet{}, fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return ErrorSet{}, fmt.Errorf("openai chat completion: no response choices")
	}

	set, err := ParseErrorSet(resp.Choices[0].Message.Content)
	if err != nil {
		log.Printf("openai-detector: bad payload after %v: %v", duration, err)
		return ErrorSet{}, err
	}

	log.Printf("openai-detector: annotated in %v: %q -> %d/%d/%d errors",
		duration, text, len(set.Spelling), len(set.Incomplete), len(set.Context))
	return set, nil
}

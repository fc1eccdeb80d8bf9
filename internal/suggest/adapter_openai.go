package suggest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAISuggester implements Suggester using OpenAI's chat completions API
type OpenAISuggester struct {
	client *openai.Client
	config Config
}

// NewOpenAISuggester creates a new OpenAI suggestion adapter
func NewOpenAISuggester(cfg Config) *OpenAISuggester {
	return &OpenAISuggester{
		client: openai.NewClient(cfg.APIKey),
		config: cfg,
	}
}

func (a *OpenAISuggester) Suggest(ctx context.Context, req Request) ([]string, error) {
	model := a.config.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: BuildSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: BuildUserPrompt(req)},
		},
		Temperature: 0.7, // A bit of variety so regeneration is useful
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, chatReq)
	duration := time.Since(start)

	if err != nil {
		log.Printf("openai-suggester: API call failed after %v: %v", duration, err)
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai chat completion: no response choices")
	}

	candidates := SplitCandidates(resp.Choices[0].Message.Content)
	log.Printf("openai-suggester: %q (%s) -> %d candidates in %v",
		req.ErrorText, req.Category, len(candidates), duration)
	return candidates, nil
}

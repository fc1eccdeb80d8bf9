package suggest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"
)

// GroqSuggester implements Suggester using Groq's OpenAI-compatible API
type GroqSuggester struct {
	client *openai.Client
	config Config
}

// NewGroqSuggester creates a new Groq suggestion adapter
func NewGroqSuggester(cfg Config) *GroqSuggester {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = "https://api.groq.com/openai/v1"
	return &GroqSuggester{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

func (a *GroqSuggester) Suggest(ctx context.Context, req Request) ([]string, error) {
	model := a.config.Model
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: BuildSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: BuildUserPrompt(req)},
		},
		Temperature: 0.7,
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, chatReq)
	duration := time.Since(start)

	if err != nil {
		log.Printf("groq-suggester: API call failed after %v: %v", duration, err)
		return nil, fmt.Errorf("groq chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("groq chat completion: no response choices")
	}

	candidates := SplitCandidates(resp.Choices[0].Message.Content)
	log.Printf("groq-suggester: %q (%s) -> %d candidates in %v",
		req.ErrorText, req.Category, len(candidates), duration)
	return candidates, nil
}

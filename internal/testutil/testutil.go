package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sencheck/sencheck/internal/annotate"
	"github.com/sencheck/sencheck/internal/config"
	"github.com/sencheck/sencheck/internal/suggest"
)

// TestConfig returns a valid configuration for testing
func TestConfig() *config.Config {
	return &config.Config{
		Detection: config.ServiceConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Suggestion: config.ServiceConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Speech: config.SpeechConfig{
			Enabled:            false,
			Provider:           "openai",
			TranscriptionModel: "whisper-1",
			SynthesisModel:     "tts-1",
			Voice:              "alloy",
			Player:             "mpv",
		},
		Engine: config.EngineConfig{
			RequestTimeout: 5 * time.Second,
		},
		Notifications: config.NotificationsConfig{
			Enabled: false,
			Type:    "log",
		},
		Providers: map[string]config.ProviderConfig{
			"openai": {APIKey: "test-api-key"},
		},
	}
}

// CreateTempConfigFile creates a temporary config file for testing
func CreateTempConfigFile(t *testing.T, configContent string) string {
	t.Helper()

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.toml")

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// MockDetector implements annotate.Detector for testing
type MockDetector struct {
	DetectFunc func(ctx context.Context, text string) (annotate.ErrorSet, error)

	mu    sync.Mutex
	calls []string
}

func (m *MockDetector) Detect(ctx context.Context, text string) (annotate.ErrorSet, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.mu.Unlock()

	if m.DetectFunc != nil {
		return m.DetectFunc(ctx, text)
	}
	return annotate.ErrorSet{}, nil
}

// Calls returns the texts detection was requested for, in order.
func (m *MockDetector) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// MockSuggester implements suggest.Suggester for testing
type MockSuggester struct {
	SuggestFunc func(ctx context.Context, req suggest.Request) ([]string, error)

	mu    sync.Mutex
	calls []suggest.Request
}

func (m *MockSuggester) Suggest(ctx context.Context, req suggest.Request) ([]string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.SuggestFunc != nil {
		return m.SuggestFunc(ctx, req)
	}
	return []string{"one", "two", "three"}, nil
}

// Calls returns the suggestion requests seen, in order.
func (m *MockSuggester) Calls() []suggest.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]suggest.Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// TestContext returns a context with timeout for testing
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// WaitForCondition waits for a condition to be true or times out
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			t.Fatalf("Condition not met within %v", timeout)
		default:
			if condition() {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	}
}

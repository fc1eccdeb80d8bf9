package config

import (
	"os"
	"strings"

	"github.com/sencheck/sencheck/internal/annotate"
	"github.com/sencheck/sencheck/internal/speech"
	"github.com/sencheck/sencheck/internal/suggest"
)

func (c *Config) ToDetectorConfig() annotate.Config {
	return annotate.Config{
		Provider: c.Detection.Provider,
		APIKey:   c.resolveAPIKeyForProvider(c.Detection.Provider),
		Model:    c.Detection.Model,
	}
}

func (c *Config) ToSuggesterConfig() suggest.Config {
	return suggest.Config{
		Provider: c.Suggestion.Provider,
		APIKey:   c.resolveAPIKeyForProvider(c.Suggestion.Provider),
		Model:    c.Suggestion.Model,
	}
}

func (c *Config) ToSpeechConfig() speech.Config {
	return speech.Config{
		Provider:           c.Speech.Provider,
		APIKey:             c.resolveAPIKeyForProvider(c.Speech.Provider),
		TranscriptionModel: c.Speech.TranscriptionModel,
		SynthesisModel:     c.Speech.SynthesisModel,
		Voice:              c.Speech.Voice,
		Language:           c.General.Language,
	}
}

// resolveAPIKeyForProvider returns the API key for a provider from
// config first, environment second.
func (c *Config) resolveAPIKeyForProvider(providerName string) string {
	if c.Providers != nil {
		if pc, ok := c.Providers[providerName]; ok && pc.APIKey != "" {
			return pc.APIKey
		}
	}

	if envVar := envVarForProvider(providerName); envVar != "" {
		return os.Getenv(envVar)
	}

	return ""
}

func envVarForProvider(providerName string) string {
	if providerName == "" {
		return ""
	}
	return strings.ToUpper(providerName) + "_API_KEY"
}

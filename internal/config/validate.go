package config

import "fmt"

var chatProviders = map[string]bool{"openai": true, "groq": true}

func (c *Config) Validate() error {
	if !chatProviders[c.Detection.Provider] {
		return fmt.Errorf("invalid detection.provider: %s (must be openai or groq)", c.Detection.Provider)
	}
	if key := c.resolveAPIKeyForProvider(c.Detection.Provider); key == "" {
		return apiKeyError(c.Detection.Provider)
	}

	if !chatProviders[c.Suggestion.Provider] {
		return fmt.Errorf("invalid suggestion.provider: %s (must be openai or groq)", c.Suggestion.Provider)
	}
	if key := c.resolveAPIKeyForProvider(c.Suggestion.Provider); key == "" {
		return apiKeyError(c.Suggestion.Provider)
	}

	if c.Speech.Enabled {
		if !chatProviders[c.Speech.Provider] {
			return fmt.Errorf("invalid speech.provider: %s (must be openai or groq)", c.Speech.Provider)
		}
		if key := c.resolveAPIKeyForProvider(c.Speech.Provider); key == "" {
			return apiKeyError(c.Speech.Provider)
		}
		if c.General.Language != "" && !isValidLanguageCode(c.General.Language) {
			return fmt.Errorf("invalid general.language: %s (use empty string for auto-detect or ISO-639-1 codes like 'en', 'es', 'fr')", c.General.Language)
		}
	}

	if c.Engine.RequestTimeout <= 0 {
		return fmt.Errorf("invalid engine.request_timeout: %v", c.Engine.RequestTimeout)
	}

	if c.Notifications.Enabled {
		switch c.Notifications.Type {
		case "desktop", "log":
		default:
			return fmt.Errorf("invalid notifications.type: %s (must be desktop or log)", c.Notifications.Type)
		}
	}

	return nil
}

func apiKeyError(provider string) error {
	return fmt.Errorf("%s API key required: not found in config (providers.%s.api_key) or environment variable (%s)",
		provider, provider, envVarForProvider(provider))
}

// isValidLanguageCode accepts two-letter ISO-639-1 codes
func isValidLanguageCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

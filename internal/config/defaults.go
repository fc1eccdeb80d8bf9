package config

import "time"

// DefaultConfig returns the initial configuration used for onboarding.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			Language: "",
		},
		Detection: ServiceConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Suggestion: ServiceConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Speech: SpeechConfig{
			Enabled:            false,
			Provider:           "openai",
			TranscriptionModel: "whisper-1",
			SynthesisModel:     "tts-1",
			Voice:              "alloy",
			Player:             "mpv",
		},
		Engine: EngineConfig{
			RequestTimeout: 30 * time.Second,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
			Type:    "desktop",
		},
		Providers: make(map[string]ProviderConfig),
	}
}

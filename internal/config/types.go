package config

import "time"

// GeneralConfig holds global settings that apply across the application
type GeneralConfig struct {
	// Language biases speech transcription; empty means auto-detect.
	Language string `toml:"language"`
}

type Config struct {
	General       GeneralConfig             `toml:"general"`
	Detection     ServiceConfig             `toml:"detection"`
	Suggestion    ServiceConfig             `toml:"suggestion"`
	Speech        SpeechConfig              `toml:"speech"`
	Engine        EngineConfig              `toml:"engine"`
	Notifications NotificationsConfig       `toml:"notifications"`
	Providers     map[string]ProviderConfig `toml:"providers"`
}

// ProviderConfig holds API key for a provider
type ProviderConfig struct {
	APIKey string `toml:"api_key"`
}

// ServiceConfig configures one chat-completion backed service
// (error detection or candidate suggestion).
type ServiceConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
}

// SpeechConfig configures optional voice input/output
type SpeechConfig struct {
	Enabled            bool   `toml:"enabled"`
	Provider           string `toml:"provider"`
	TranscriptionModel string `toml:"transcription_model"`
	SynthesisModel     string `toml:"synthesis_model"`
	Voice              string `toml:"voice"`
	// Player is the external command audio is piped to for playback.
	Player string `toml:"player"`
}

// EngineConfig tunes the correction engine
type EngineConfig struct {
	RequestTimeout time.Duration `toml:"request_timeout"`
}

type NotificationsConfig struct {
	Enabled bool   `toml:"enabled"`
	Type    string `toml:"type"`
}

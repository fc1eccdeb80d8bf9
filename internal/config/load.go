package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

var ErrConfigNotFound = errors.New("config not found")

func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	sencheckDir := filepath.Join(configDir, "sencheck")
	if err := os.MkdirAll(sencheckDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(sencheckDir, "config.toml"), nil
}

func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: run sencheck configure", ErrConfigNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
	}

	log.Printf("Config: loading configuration from %s", configPath)
	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if config.Providers == nil {
		config.Providers = make(map[string]ProviderConfig)
	}

	config.applyDefaults()

	log.Printf("Config: configuration loaded successfully")
	return &config, nil
}

// Save writes the configuration to the user config path.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(configPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file %s: %w", configPath, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}
	return nil
}

// applyDefaults fills in anything the file leaves unset
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Detection.Provider == "" {
		c.Detection.Provider = def.Detection.Provider
	}
	if c.Detection.Model == "" {
		c.Detection.Model = def.Detection.Model
	}
	if c.Suggestion.Provider == "" {
		c.Suggestion.Provider = def.Suggestion.Provider
	}
	if c.Suggestion.Model == "" {
		c.Suggestion.Model = def.Suggestion.Model
	}
	if c.Speech.Provider == "" {
		c.Speech.Provider = def.Speech.Provider
	}
	if c.Speech.TranscriptionModel == "" {
		c.Speech.TranscriptionModel = def.Speech.TranscriptionModel
	}
	if c.Speech.SynthesisModel == "" {
		c.Speech.SynthesisModel = def.Speech.SynthesisModel
	}
	if c.Speech.Voice == "" {
		c.Speech.Voice = def.Speech.Voice
	}
	if c.Speech.Player == "" {
		c.Speech.Player = def.Speech.Player
	}
	if c.Engine.RequestTimeout <= 0 {
		c.Engine.RequestTimeout = def.Engine.RequestTimeout
	}
	if c.Notifications.Type == "" {
		c.Notifications.Type = def.Notifications.Type
	}
}

package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/sencheck/sencheck/internal/config"
)

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:7] + "..." + key[len(key)-4:]
}

// RunConfigure walks the user through provider and model setup and
// saves the result. Existing settings are offered as the defaults.
func RunConfigure() error {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrConfigNotFound) {
		cfg = config.DefaultConfig()
	} else if err != nil {
		return err
	}

	fmt.Println(StyleHeader.Render("sencheck configuration"))

	provider := cfg.Detection.Provider
	apiKey := cfg.Providers[provider].APIKey
	keyDesc := "Stored in the config file; the matching *_API_KEY environment variable also works"
	if apiKey != "" {
		keyDesc = fmt.Sprintf("Currently: %s. Leave unchanged or paste a new key", maskAPIKey(apiKey))
	}

	detectionModel := cfg.Detection.Model
	suggestionModel := cfg.Suggestion.Model
	speechEnabled := cfg.Speech.Enabled
	language := cfg.General.Language
	notifications := cfg.Notifications.Enabled

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Language service provider").
				Description("Used for error detection and word suggestions").
				Options(
					huh.NewOption("OpenAI GPT", "openai"),
					huh.NewOption("Groq Llama (fast)", "groq"),
				).
				Value(&provider),
			huh.NewInput().
				Title("API key").
				Description(keyDesc).
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Detection model").
				Description("Chat model that classifies spelling/incomplete/context errors").
				Value(&detectionModel),
			huh.NewInput().
				Title("Suggestion model").
				Description("Chat model that proposes the three replacement candidates").
				Value(&suggestionModel),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable voice input/output?").
				Description("Whisper transcription for 'sencheck transcribe' and TTS for 'sencheck say'").
				Value(&speechEnabled),
			huh.NewInput().
				Title("Spoken language").
				Description("ISO-639-1 code like 'en', or empty for auto-detect").
				Value(&language),
			huh.NewConfirm().
				Title("Desktop notifications?").
				Description("notify-send when a sentence check finishes").
				Value(&notifications),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Detection.Provider = provider
	cfg.Detection.Model = detectionModel
	cfg.Suggestion.Provider = provider
	cfg.Suggestion.Model = suggestionModel
	cfg.Speech.Enabled = speechEnabled
	if speechEnabled && provider == "openai" {
		cfg.Speech.Provider = provider
	}
	cfg.General.Language = language
	cfg.Notifications.Enabled = notifications
	if apiKey != "" {
		cfg.Providers[provider] = config.ProviderConfig{APIKey: apiKey}
	}

	if err := cfg.Validate(); err != nil {
		fmt.Println(StyleError.Render("Configuration problem: " + err.Error()))
		return err
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(StyleSuccess.Render("Configuration saved."))
	fmt.Println(StyleSubtle.Render("Restart the daemon to apply: sencheck stop && sencheck serve"))
	return nil
}

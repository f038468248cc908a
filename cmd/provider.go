package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/longkey1/sunyata/internal/huggingface"
	"github.com/longkey1/sunyata/internal/sunyata/assistant"
	"github.com/longkey1/sunyata/internal/sunyata/config"
	"github.com/longkey1/sunyata/internal/sunyata/prompt"
	"github.com/longkey1/sunyata/internal/sunyata/relay"
)

// dotenvFile is loaded, if present, before reading credentials.
const dotenvFile = ".env"

// loadConfig loads the configuration and applies the prompt file's model
// override, if any. It returns the system prompt to use.
func loadConfig() (*config.Config, string, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}

	if cfg.PromptFile == "" {
		return cfg, prompt.DefaultSystemPrompt, nil
	}
	p, err := prompt.LoadPrompt(cfg.PromptFile)
	if err != nil {
		return nil, "", fmt.Errorf("loading prompt file: %w", err)
	}
	if p.Model != nil {
		cfg.Model = *p.Model
		if verbose {
			fmt.Fprintf(os.Stderr, "Using model from prompt file: %s\n", cfg.Model)
		}
	}
	return cfg, p.System, nil
}

// newLogger returns a stderr logger, or a discarding one unless always or
// --verbose is set.
func newLogger(always bool) *log.Logger {
	if always || verbose {
		return log.New(os.Stderr, "", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

// newAssistant wires credentials, the inference endpoint and the relay into
// an Assistant. A missing API key is returned as *config.ConfigError.
func newAssistant(cfg *config.Config, system string, logger *log.Logger) (*assistant.Assistant, error) {
	creds, err := config.LoadCredentials(dotenvFile)
	if err != nil {
		return nil, err
	}

	provider := huggingface.NewProvider(huggingface.StaticConfig{
		BaseURL: cfg.BaseURL,
		Token:   creds.APIKey,
		Timeout: cfg.Timeout,
	})
	r := relay.New(provider, relay.Options{
		Model:     cfg.Model,
		TopP:      cfg.TopP,
		MaxTokens: cfg.MaxTokens,
	}, logger)

	a := assistant.New(r, assistant.Options{
		SystemPrompt: system,
		HistoryLimit: cfg.HistoryLimit,
	}, logger)

	if verbose {
		fmt.Fprintf(os.Stderr, "Provider: %s (%s)\n", huggingface.ProviderName, cfg.BaseURL)
		fmt.Fprintf(os.Stderr, "Token: %s\n", config.MaskToken(creds.APIKey))
		fmt.Fprintf(os.Stderr, "Assistant: %s\n", a)
	}
	return a, nil
}

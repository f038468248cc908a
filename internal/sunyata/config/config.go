package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultBaseURL            = "https://router.huggingface.co/v1"
	DefaultModel              = "Qwen/Qwen2.5-Coder-32B-Instruct"
	DefaultTopP               = 0.7
	DefaultMaxTokens          = 512
	DefaultTemperature        = 0.7
	DefaultTimeout            = 120 * time.Second
	DefaultAddr               = ":8501"
	DefaultHistoryLimit       = 5
	DefaultRateLimit          = 30
	DefaultSessionIdleTimeout = 24 * time.Hour
)

// Config holds the configuration for the assistant
type Config struct {
	BaseURL            string        `toml:"base_url" mapstructure:"base_url"`
	Model              string        `toml:"model" mapstructure:"model"`
	TopP               float32       `toml:"top_p" mapstructure:"top_p"`
	MaxTokens          int           `toml:"max_tokens" mapstructure:"max_tokens"`
	Temperature        float32       `toml:"temperature" mapstructure:"temperature"` // Default for the UI slider
	Timeout            time.Duration `toml:"timeout" mapstructure:"timeout"`         // Wait for response headers, 0 = none
	PromptFile         string        `toml:"prompt_file" mapstructure:"prompt_file"` // Optional TOML system prompt override
	Addr               string        `toml:"addr" mapstructure:"addr"`
	HistoryLimit       int           `toml:"history_limit" mapstructure:"history_limit"`
	RateLimit          int           `toml:"rate_limit" mapstructure:"rate_limit"` // Generations per minute per client, 0 = disabled
	SessionIdleTimeout time.Duration `toml:"session_idle_timeout" mapstructure:"session_idle_timeout"`
}

// NewDefaultConfig returns a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		BaseURL:            DefaultBaseURL,
		Model:              DefaultModel,
		TopP:               DefaultTopP,
		MaxTokens:          DefaultMaxTokens,
		Temperature:        DefaultTemperature,
		Timeout:            DefaultTimeout,
		PromptFile:         "",
		Addr:               DefaultAddr,
		HistoryLimit:       DefaultHistoryLimit,
		RateLimit:          DefaultRateLimit,
		SessionIdleTimeout: DefaultSessionIdleTimeout,
	}
}

// SetDefaults registers every default value with viper.
func SetDefaults(v *viper.Viper) {
	d := NewDefaultConfig()
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("model", d.Model)
	v.SetDefault("top_p", d.TopP)
	v.SetDefault("max_tokens", d.MaxTokens)
	v.SetDefault("temperature", d.Temperature)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("prompt_file", d.PromptFile)
	v.SetDefault("addr", d.Addr)
	v.SetDefault("history_limit", d.HistoryLimit)
	v.SetDefault("rate_limit", d.RateLimit)
	v.SetDefault("session_idle_timeout", d.SessionIdleTimeout)
}

// LoadConfig loads configuration from the global viper instance
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(viper.GetViper())
}

// LoadConfigFrom loads configuration from v
func LoadConfigFrom(v *viper.Viper) (*Config, error) {
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	var err error
	if config.BaseURL, err = expandEnvVar(config.BaseURL); err != nil {
		return nil, err
	}
	if config.PromptFile, err = expandEnvVar(config.PromptFile); err != nil {
		return nil, err
	}

	// Convert prompt file to an absolute path
	if config.PromptFile != "" {
		absPath, err := ResolvePath(v, config.PromptFile)
		if err != nil {
			return nil, fmt.Errorf("error resolving prompt file path '%s': %v", config.PromptFile, err)
		}
		config.PromptFile = absPath
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the value ranges of the configuration.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is not configured. Set it in config file (base_url) or environment variable (SUNYATA_BASE_URL)")
	}
	if c.Model == "" {
		return fmt.Errorf("model is not configured. Set it in config file (model) or environment variable (SUNYATA_MODEL)")
	}
	if !(c.TopP > 0 && c.TopP <= 1) {
		return fmt.Errorf("top_p must be in (0, 1], got %v", c.TopP)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if !(c.Temperature >= 0 && c.Temperature <= 1) {
		return fmt.Errorf("temperature must be in [0, 1], got %v", c.Temperature)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be positive, got %d", c.HistoryLimit)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative, got %d", c.RateLimit)
	}
	return nil
}

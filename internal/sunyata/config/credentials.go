package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// APIKeyEnv is the environment variable holding the inference API key.
const APIKeyEnv = "HF_API_KEY"

// ConfigError reports a configuration problem that makes the session unusable.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Credentials are the secrets read from the process environment.
type Credentials struct {
	APIKey string `env:"HF_API_KEY,required"`
}

// LoadCredentials reads Credentials from the environment after loading the
// given dotenv files. Missing dotenv files are ignored; variables already set
// in the environment win over dotenv values.
func LoadCredentials(envFiles ...string) (*Credentials, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigError{Msg: fmt.Sprintf("failed to load %s", f), Err: err}
		}
	}

	creds := &Credentials{}
	if err := env.Parse(creds); err != nil {
		return nil, &ConfigError{Msg: missingKeyMessage(), Err: err}
	}
	creds.APIKey = strings.TrimSpace(creds.APIKey)
	if creds.APIKey == "" {
		return nil, &ConfigError{Msg: missingKeyMessage()}
	}
	return creds, nil
}

func missingKeyMessage() string {
	return fmt.Sprintf("API key not found. Please set the '%s' environment variable.", APIKeyEnv)
}

// MaskToken returns a masked version of the token for display
func MaskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

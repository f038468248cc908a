package prompt

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/longkey1/sunyata/internal/sunyata"
)

// Prompt represents the structure of a TOML prompt file
type Prompt struct {
	System string  `toml:"system"`
	Model  *string `toml:"model,omitempty"`
}

// LoadPrompt loads a prompt file and returns its contents
func LoadPrompt(filePath string) (*Prompt, error) {
	var prompt Prompt
	if _, err := toml.DecodeFile(filePath, &prompt); err != nil {
		return nil, fmt.Errorf("error decoding prompt file: %v", err)
	}
	if strings.TrimSpace(prompt.System) == "" {
		return nil, fmt.Errorf("prompt file %s has an empty system prompt", filePath)
	}
	if prompt.Model != nil && strings.TrimSpace(*prompt.Model) == "" {
		return nil, fmt.Errorf("prompt file %s sets an empty model", filePath)
	}
	return &prompt, nil
}

// SystemPrompt returns the system prompt from the file at path, or
// DefaultSystemPrompt when path is empty.
func SystemPrompt(path string) (string, error) {
	if path == "" {
		return DefaultSystemPrompt, nil
	}
	p, err := LoadPrompt(path)
	if err != nil {
		return "", err
	}
	return p.System, nil
}

// Messages pairs the system instruction with one synthesized user prompt.
func Messages(system, user string) []sunyata.Message {
	return []sunyata.Message{
		{Role: sunyata.RoleSystem, Content: system},
		{Role: sunyata.RoleUser, Content: user},
	}
}

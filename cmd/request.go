package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/longkey1/sunyata/internal/sunyata"
	"github.com/longkey1/sunyata/internal/sunyata/assistant"
	"github.com/longkey1/sunyata/internal/sunyata/config"
	"github.com/longkey1/sunyata/internal/sunyata/prompt"
	"github.com/longkey1/sunyata/internal/sunyata/relay"
	"github.com/spf13/cobra"
)

// requestFlags are the form inputs shared by ask and prompt.
type requestFlags struct {
	language     string
	taskType     string
	temperature  float32
	requirements []string
	action       string
	useEditor    bool
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.language, "language", "l", string(sunyata.LanguagePython), "Programming language ("+joinOptions(sunyata.Languages)+")")
	cmd.Flags().StringVarP(&f.taskType, "task", "t", string(sunyata.TaskWriteNewCode), "Task type ("+joinOptions(sunyata.TaskTypes)+")")
	cmd.Flags().Float32Var(&f.temperature, "temperature", config.DefaultTemperature, "Creativity level between 0.0 and 1.0 (default from config)")
	cmd.Flags().StringSliceVarP(&f.requirements, "require", "r", nil, "Requirements to include ("+strings.Join(prompt.RequirementNames, ", ")+")")
	cmd.Flags().StringVarP(&f.action, "action", "a", string(sunyata.ActionGenerate), "Action ("+joinOptions(sunyata.Actions)+")")
	cmd.Flags().BoolVarP(&f.useEditor, "editor", "e", false, "Use default editor (from EDITOR environment variable) to compose the query")
}

// request builds an assistant.Request from the flags and the query.
// The temperature comes from the config unless the flag was given.
func (f *requestFlags) request(cmd *cobra.Command, cfg *config.Config, query string) (assistant.Request, error) {
	lang, err := sunyata.ParseLanguage(f.language)
	if err != nil {
		return assistant.Request{}, err
	}
	task, err := sunyata.ParseTaskType(f.taskType)
	if err != nil {
		return assistant.Request{}, err
	}
	action, err := sunyata.ParseAction(f.action)
	if err != nil {
		return assistant.Request{}, err
	}
	reqs, err := prompt.ParseRequirements(f.requirements)
	if err != nil {
		return assistant.Request{}, err
	}
	temperature := cfg.Temperature
	if cmd.Flags().Changed("temperature") {
		temperature = f.temperature
	}
	if err := relay.ValidateTemperature(temperature); err != nil {
		return assistant.Request{}, err
	}
	return assistant.Request{
		Language:     lang,
		TaskType:     task,
		Query:        query,
		Requirements: reqs,
		Temperature:  temperature,
		Action:       action,
	}, nil
}

// readQuery gets the query from arguments, the editor, or stdin.
func (f *requestFlags) readQuery(args []string, stdin io.Reader) (string, error) {
	if f.useEditor {
		message, err := getMessageFromEditor()
		if err != nil {
			return "", fmt.Errorf("getting message from editor: %w", err)
		}
		return message, nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	input, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading from stdin: %w", err)
	}
	return strings.TrimSpace(string(input)), nil
}

// getMessageFromEditor opens the default editor and returns the edited message
func getMessageFromEditor() (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return "", fmt.Errorf("EDITOR environment variable is not set")
	}

	tmpFile, err := os.CreateTemp("", "sunyata-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %v", err)
	}
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	cmd := exec.Command(editor, tmpFile.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to open editor: %v", err)
	}

	content, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited content: %v", err)
	}

	return strings.TrimSpace(string(content)), nil
}

func joinOptions[T ~string](options []T) string {
	return strings.Join(labels(options), ", ")
}

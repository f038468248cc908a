// Package sunyata provides the core vocabulary of the assistant.
// It defines the Streamer interface that the inference endpoint implementation
// (huggingface) must implement, and the closed sets of languages, task types
// and quick actions the form inputs can select from.
package sunyata

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownLanguage is returned when a language is not one of Languages.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrUnknownTaskType is returned when a task type is not one of TaskTypes.
	ErrUnknownTaskType = errors.New("unknown task type")
	// ErrUnknownAction is returned when an action is not one of Actions.
	ErrUnknownAction = errors.New("unknown action")
)

// Language is a target programming language label.
type Language string

const (
	LanguagePython     Language = "Python"
	LanguageJava       Language = "Java"
	LanguageCPP        Language = "C++"
	LanguageJavaScript Language = "JavaScript"
	LanguageHTMLCSS    Language = "HTML/CSS"
	LanguageSQL        Language = "SQL"
)

// Languages lists the selectable languages in display order.
var Languages = []Language{
	LanguagePython,
	LanguageJava,
	LanguageCPP,
	LanguageJavaScript,
	LanguageHTMLCSS,
	LanguageSQL,
}

// TaskType is the kind of help being asked for.
type TaskType string

const (
	TaskWriteNewCode     TaskType = "Write New Code"
	TaskDebugCode        TaskType = "Debug Code"
	TaskOptimizeCode     TaskType = "Optimize Code"
	TaskAddDocumentation TaskType = "Add Documentation"
	TaskCodeReview       TaskType = "Code Review"
	TaskExplainCode      TaskType = "Explain Code"
)

// TaskTypes lists the selectable task types in display order.
var TaskTypes = []TaskType{
	TaskWriteNewCode,
	TaskDebugCode,
	TaskOptimizeCode,
	TaskAddDocumentation,
	TaskCodeReview,
	TaskExplainCode,
}

// Action selects how the user prompt is phrased.
// ActionGenerate is the full form submission; the others are quick actions.
type Action string

const (
	ActionGenerate Action = "generate"
	ActionAnalyze  Action = "analyze"
	ActionDebug    Action = "debug"
	ActionDocument Action = "document"
)

// Actions lists every supported action.
var Actions = []Action{ActionGenerate, ActionAnalyze, ActionDebug, ActionDocument}

// ParseLanguage matches s against Languages, ignoring case and surrounding space.
//
// Example:
//
//	lang, err := ParseLanguage("c++")
//	// lang = LanguageCPP
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	for _, l := range Languages {
		if strings.EqualFold(string(l), s) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownLanguage, s, joinLabels(Languages))
}

// ParseTaskType matches s against TaskTypes, ignoring case and surrounding space.
func ParseTaskType(s string) (TaskType, error) {
	s = strings.TrimSpace(s)
	for _, t := range TaskTypes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownTaskType, s, joinLabels(TaskTypes))
}

// ParseAction matches s against Actions. An empty string means ActionGenerate.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ActionGenerate, nil
	}
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownAction, s, joinLabels(Actions))
}

func joinLabels[T ~string](labels []T) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}

// ChatRequest is one streaming completion call against the inference endpoint.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature float32
	TopP        float32
	MaxTokens   int
}

// Streamer defines the interface for the inference endpoint.
// StreamChat sends the conversation with streaming enabled and calls onDelta
// once for every non-empty piece of delta text, in arrival order.
// It returns when the stream ends or fails.
type Streamer interface {
	StreamChat(ctx context.Context, req ChatRequest, onDelta func(string)) error
}

// StreamerFunc adapts an ordinary function to the Streamer interface.
type StreamerFunc func(ctx context.Context, req ChatRequest, onDelta func(string)) error

// StreamChat calls f(ctx, req, onDelta).
func (f StreamerFunc) StreamChat(ctx context.Context, req ChatRequest, onDelta func(string)) error {
	return f(ctx, req, onDelta)
}

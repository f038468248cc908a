package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/longkey1/sunyata/internal/sunyata"
)

// ErrEmptyBody is returned when the request body is empty or only whitespace.
var ErrEmptyBody = errors.New("please enter your code or query first")

// Requirements are the optional boolean toggles of the form.
type Requirements struct {
	Performance bool `json:"performance"`
	Memory      bool `json:"memory"`
	Security    bool `json:"security"`
	Testing     bool `json:"testing"`
}

// Phrases returns the phrase of every enabled requirement in canonical order.
func (r Requirements) Phrases() []string {
	var phrases []string
	if r.Performance {
		phrases = append(phrases, "optimize for performance")
	}
	if r.Memory {
		phrases = append(phrases, "optimize for memory usage")
	}
	if r.Security {
		phrases = append(phrases, "implement security best practices")
	}
	if r.Testing {
		phrases = append(phrases, "include unit tests")
	}
	return phrases
}

// RequirementNames are the short names accepted by Set, in canonical order.
var RequirementNames = []string{"performance", "memory", "security", "testing"}

// ErrUnknownRequirement is returned by Set for a name not in RequirementNames.
var ErrUnknownRequirement = errors.New("unknown requirement")

// Set turns the named requirement on or off.
func (r *Requirements) Set(name string, on bool) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "performance", "perf":
		r.Performance = on
	case "memory", "mem":
		r.Memory = on
	case "security", "sec":
		r.Security = on
	case "testing", "tests", "test":
		r.Testing = on
	default:
		return fmt.Errorf("%w: %q (valid: %s)", ErrUnknownRequirement, name, strings.Join(RequirementNames, ", "))
	}
	return nil
}

// Toggle flips the named requirement.
func (r *Requirements) Toggle(name string) error {
	var flip Requirements
	if err := flip.Set(name, true); err != nil {
		return err
	}
	r.Performance = r.Performance != flip.Performance
	r.Memory = r.Memory != flip.Memory
	r.Security = r.Security != flip.Security
	r.Testing = r.Testing != flip.Testing
	return nil
}

// Enabled reports whether the named requirement is on.
func (r Requirements) Enabled(name string) bool {
	switch name {
	case "performance":
		return r.Performance
	case "memory":
		return r.Memory
	case "security":
		return r.Security
	case "testing":
		return r.Testing
	}
	return false
}

// ParseRequirements enables every named requirement.
func ParseRequirements(names []string) (Requirements, error) {
	var r Requirements
	for _, n := range names {
		if err := r.Set(n, true); err != nil {
			return Requirements{}, err
		}
	}
	return r, nil
}

// Any reports whether at least one requirement is enabled.
func (r Requirements) Any() bool {
	return r.Performance || r.Memory || r.Security || r.Testing
}

// Request holds everything the user prompt is assembled from.
type Request struct {
	TaskType     sunyata.TaskType
	Language     sunyata.Language
	Body         string
	Requirements Requirements
	Action       sunyata.Action
}

// Build formats the user prompt for req.
//
// For ActionGenerate (or an empty action) the result is
//
//	Task Type: <task_type>
//	Language: <language>
//	Request: <body>
//	Requirements: <phrase>, <phrase>
//
// where the Requirements line is only present when a toggle is enabled.
// Quick actions produce a single sentence around the body instead.
func Build(req Request) (string, error) {
	if strings.TrimSpace(req.Body) == "" {
		return "", ErrEmptyBody
	}

	switch req.Action {
	case sunyata.ActionGenerate, "":
		var b strings.Builder
		fmt.Fprintf(&b, "Task Type: %s\nLanguage: %s\nRequest: %s", req.TaskType, req.Language, req.Body)
		if req.Requirements.Any() {
			fmt.Fprintf(&b, "\nRequirements: %s", strings.Join(req.Requirements.Phrases(), ", "))
		}
		return b.String(), nil
	case sunyata.ActionAnalyze:
		return fmt.Sprintf("Analyze this %s code and provide insights: %s", req.Language, req.Body), nil
	case sunyata.ActionDebug:
		return fmt.Sprintf("Debug this %s code: %s", req.Language, req.Body), nil
	case sunyata.ActionDocument:
		return fmt.Sprintf("Add comprehensive documentation to this %s code: %s", req.Language, req.Body), nil
	default:
		return "", fmt.Errorf("%w: %q", sunyata.ErrUnknownAction, req.Action)
	}
}

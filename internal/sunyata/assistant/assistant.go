// Package assistant holds the application state of a running assistant and
// performs submissions: assemble the prompt, relay the stream, record the
// interaction.
package assistant

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/longkey1/sunyata/internal/sunyata"
	"github.com/longkey1/sunyata/internal/sunyata/prompt"
	"github.com/longkey1/sunyata/internal/sunyata/relay"
	"github.com/longkey1/sunyata/internal/sunyata/session"
)

// Options configure an Assistant.
type Options struct {
	SystemPrompt string // Defaults to prompt.DefaultSystemPrompt
	HistoryLimit int    // Entries shown by Recent, defaults to 5
}

// Request is one form submission.
type Request struct {
	Language     sunyata.Language
	TaskType     sunyata.TaskType
	Query        string
	Requirements prompt.Requirements
	Temperature  float32
	Action       sunyata.Action
}

// Assistant is the explicitly constructed application state. It owns no
// history itself; every submission is recorded into the caller's session.
type Assistant struct {
	relay        *relay.Relay
	historyLimit int
	logger       *log.Logger

	mu           sync.RWMutex
	systemPrompt string
}

// New creates an Assistant. A nil logger discards log output.
func New(r *relay.Relay, opts Options, logger *log.Logger) *Assistant {
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = prompt.DefaultSystemPrompt
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 5
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Assistant{
		relay:        r,
		historyLimit: opts.HistoryLimit,
		logger:       logger,
		systemPrompt: opts.SystemPrompt,
	}
}

// SystemPrompt returns the instruction sent ahead of every user prompt.
func (a *Assistant) SystemPrompt() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.systemPrompt
}

// SetSystemPrompt replaces the system prompt for later submissions.
// An empty value restores the default.
func (a *Assistant) SetSystemPrompt(s string) {
	if s == "" {
		s = prompt.DefaultSystemPrompt
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.systemPrompt = s
}

// HistoryLimit returns how many entries Recent shows.
func (a *Assistant) HistoryLimit() int {
	return a.historyLimit
}

// Validate checks req without calling the endpoint. It returns
// prompt.ErrEmptyBody for an empty query.
func (a *Assistant) Validate(req Request) error {
	if _, err := a.userPrompt(req); err != nil {
		return err
	}
	return relay.ValidateTemperature(req.Temperature)
}

func (a *Assistant) userPrompt(req Request) (string, error) {
	if _, err := sunyata.ParseLanguage(string(req.Language)); err != nil {
		return "", err
	}
	if _, err := sunyata.ParseTaskType(string(req.TaskType)); err != nil {
		return "", err
	}
	return prompt.Build(prompt.Request{
		TaskType:     req.TaskType,
		Language:     req.Language,
		Body:         req.Query,
		Requirements: req.Requirements,
		Action:       req.Action,
	})
}

// Submit runs one submission to completion. Every fragment is passed to sink
// as it arrives, then the interaction {query, full response} is appended to
// sess and returned with the number it was recorded under. Endpoint failures end up in the response as an
// "Error: ..." fragment and are recorded like any other response.
//
// Invalid requests return an error before the endpoint is called and leave
// sess untouched; an empty query returns prompt.ErrEmptyBody.
func (a *Assistant) Submit(ctx context.Context, sess *session.Session, req Request, sink func(string)) (session.Entry, error) {
	user, err := a.userPrompt(req)
	if err != nil {
		return session.Entry{}, err
	}
	if err := relay.ValidateTemperature(req.Temperature); err != nil {
		return session.Entry{}, err
	}
	if sink == nil {
		sink = func(string) {}
	}

	messages := prompt.Messages(a.SystemPrompt(), user)
	response, streamErr := a.relay.Stream(ctx, messages, req.Temperature, sink)
	if streamErr != nil {
		a.logger.Printf("SUBMIT_FAILED | session=%s error=%v", sess.GetShortID(), streamErr)
	}

	it := session.NewInteraction(req.Query, response)
	it.Language = req.Language
	it.TaskType = req.TaskType
	it.Action = req.Action
	if it.Action == "" {
		it.Action = sunyata.ActionGenerate
	}
	n := sess.Append(it)

	a.logger.Printf("SUBMIT | session=%s number=%d language=%s task=%q action=%s chars=%d",
		sess.GetShortID(), n, req.Language, req.TaskType, it.Action, len(response))
	return session.Entry{Number: n, Interaction: it}, nil
}

// Recent returns the display view of sess: the last HistoryLimit entries,
// most recent first.
func (a *Assistant) Recent(sess *session.Session) []session.Entry {
	return sess.Recent(a.historyLimit)
}

// String describes the assistant for verbose output.
func (a *Assistant) String() string {
	o := a.relay.Options()
	return fmt.Sprintf("model=%s top_p=%v max_tokens=%d history=%d", o.Model, o.TopP, o.MaxTokens, a.historyLimit)
}

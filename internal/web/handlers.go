package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/longkey1/sunyata/internal/render"
	"github.com/longkey1/sunyata/internal/sunyata"
	"github.com/longkey1/sunyata/internal/sunyata/assistant"
	"github.com/longkey1/sunyata/internal/sunyata/prompt"
	"github.com/longkey1/sunyata/internal/sunyata/session"
	"github.com/longkey1/sunyata/internal/version"
)

// EmptyQueryWarning is shown when the form is submitted without a query.
const EmptyQueryWarning = "Please enter your code or query first!"

// maxRequestBytes bounds the JSON body of a generate request.
const maxRequestBytes = 1 << 20

// generateRequest is the JSON body of POST /api/generate.
type generateRequest struct {
	Language     string              `json:"language"`
	TaskType     string              `json:"task_type"`
	Query        string              `json:"query"`
	Requirements prompt.Requirements `json:"requirements"`
	Temperature  *float32            `json:"temperature,omitempty"` // nil = server default
	Action       string              `json:"action,omitempty"`
}

// historyEntry is one interaction as shown in the history panel.
type historyEntry struct {
	Number       int              `json:"number"`
	ID           string           `json:"id"`
	Input        string           `json:"input"`
	Response     string           `json:"response"`
	ResponseHTML template.HTML    `json:"response_html"`
	Language     sunyata.Language `json:"language"`
	TaskType     sunyata.TaskType `json:"task_type"`
	Action       sunyata.Action   `json:"action"`
	CreatedAt    time.Time        `json:"created_at"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Warning bool   `json:"warning,omitempty"`
}

type optionsResponse struct {
	Languages    []sunyata.Language `json:"languages"`
	TaskTypes    []sunyata.TaskType `json:"task_types"`
	Actions      []sunyata.Action   `json:"actions"`
	Temperature  float32            `json:"temperature"`
	HistoryLimit int                `json:"history_limit"`
}

type pageData struct {
	Version     string
	Languages   []sunyata.Language
	TaskTypes   []sunyata.TaskType
	Temperature float32
	History     []historyEntry
	Total       int
}

func newHistoryEntry(e session.Entry) historyEntry {
	return historyEntry{
		Number:       e.Number,
		ID:           e.ID,
		Input:        e.Input,
		Response:     e.Response,
		ResponseHTML: render.HTML(e.Response),
		Language:     e.Language,
		TaskType:     e.TaskType,
		Action:       e.Action,
		CreatedAt:    e.CreatedAt,
	}
}

func (s *Server) recentEntries(sess *session.Session) []historyEntry {
	recent := s.assistant.Recent(sess)
	out := make([]historyEntry, len(recent))
	for i, e := range recent {
		out[i] = newHistoryEntry(e)
	}
	return out
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	data := pageData{
		Version:     version.Short(),
		Languages:   sunyata.Languages,
		TaskTypes:   sunyata.TaskTypes,
		Temperature: s.opts.DefaultTemperature,
		History:     s.recentEntries(sess),
		Total:       sess.Len(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Printf("TEMPLATE_ERROR | error=%v", err)
	}
}

// parseGenerateRequest validates the body into an assistant.Request.
func (s *Server) parseGenerateRequest(r *http.Request) (assistant.Request, error) {
	var body generateRequest
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBytes)).Decode(&body); err != nil {
		return assistant.Request{}, fmt.Errorf("invalid request body: %w", err)
	}
	// The empty-query warning takes precedence over any other field error.
	if strings.TrimSpace(body.Query) == "" {
		return assistant.Request{}, prompt.ErrEmptyBody
	}

	lang, err := sunyata.ParseLanguage(body.Language)
	if err != nil {
		return assistant.Request{}, err
	}
	task, err := sunyata.ParseTaskType(body.TaskType)
	if err != nil {
		return assistant.Request{}, err
	}
	action, err := sunyata.ParseAction(body.Action)
	if err != nil {
		return assistant.Request{}, err
	}
	temperature := s.opts.DefaultTemperature
	if body.Temperature != nil {
		temperature = *body.Temperature
	}

	req := assistant.Request{
		Language:     lang,
		TaskType:     task,
		Query:        body.Query,
		Requirements: body.Requirements,
		Temperature:  temperature,
		Action:       action,
	}
	return req, s.assistant.Validate(req)
}

// handleGenerate streams one submission as Server-Sent Events:
// "fragment" events carry JSON strings, a final "done" event carries the
// recorded history entry.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)

	req, err := s.parseGenerateRequest(r)
	if errors.Is(err, prompt.ErrEmptyBody) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: EmptyQueryWarning, Warning: true})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Streaming not supported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	gone := false
	send := func(event string, v interface{}) {
		if gone {
			return
		}
		data, err := json.Marshal(v)
		if err != nil {
			return
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
			gone = true
			return
		}
		flusher.Flush()
	}

	// A submission cannot be aborted once started: a client that goes away
	// stops receiving fragments, the interaction is still recorded.
	ctx := context.WithoutCancel(r.Context())
	entry, err := s.assistant.Submit(ctx, sess, req, func(fragment string) {
		send("fragment", fragment)
	})
	if err != nil {
		send("error", errorResponse{Error: err.Error()})
		return
	}

	send("done", newHistoryEntry(entry))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":   sess.Len(),
		"entries": s.recentEntries(sess),
	})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResponse{
		Languages:    sunyata.Languages,
		TaskTypes:    sunyata.TaskTypes,
		Actions:      sunyata.Actions,
		Temperature:  s.opts.DefaultTemperature,
		HistoryLimit: s.assistant.HistoryLimit(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"version":  version.Short(),
		"sessions": s.store.Len(),
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

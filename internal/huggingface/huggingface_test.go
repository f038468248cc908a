package huggingface

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/longkey1/sunyata/internal/sunyata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model       string            `json:"model"`
	Messages    []sunyata.Message `json:"messages"`
	Temperature float64           `json:"temperature"`
	TopP        float64           `json:"top_p"`
	MaxTokens   int               `json:"max_tokens"`
	Stream      bool              `json:"stream"`
}

func sseServer(t *testing.T, captured *capturedRequest, auth *string, events []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		*auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, ev := range events {
			fmt.Fprintf(w, "data: %s\n\n", ev)
			flusher.Flush()
		}
	}))
}

func chunk(content string) string {
	b, _ := json.Marshal(map[string]interface{}{
		"id":      "chatcmpl-1",
		"object":  "chat.completion.chunk",
		"created": 1,
		"model":   "Qwen/Qwen2.5-Coder-32B-Instruct",
		"choices": []map[string]interface{}{
			{"index": 0, "delta": map[string]string{"content": content}},
		},
	})
	return string(b)
}

func TestStreamChat(t *testing.T) {
	var captured capturedRequest
	var auth string
	srv := sseServer(t, &captured, &auth, []string{
		chunk("Hel"),
		chunk(""),
		`{"id":"chatcmpl-1","object":"chat.completion.chunk","choices":[]}`,
		chunk("lo"),
		"[DONE]",
	})
	defer srv.Close()

	p := NewProvider(StaticConfig{BaseURL: srv.URL + "/v1", Token: "hf_test", Timeout: 5 * time.Second})

	var got []string
	err := p.StreamChat(context.Background(), sunyata.ChatRequest{
		Model: "Qwen/Qwen2.5-Coder-32B-Instruct",
		Messages: []sunyata.Message{
			{Role: sunyata.RoleSystem, Content: "system"},
			{Role: sunyata.RoleUser, Content: "user"},
		},
		Temperature: 0.4,
		TopP:        0.7,
		MaxTokens:   512,
	}, func(s string) { got = append(got, s) })
	require.NoError(t, err)

	assert.Equal(t, []string{"Hel", "lo"}, got)
	assert.Equal(t, "Bearer hf_test", auth)
	assert.Equal(t, "Qwen/Qwen2.5-Coder-32B-Instruct", captured.Model)
	assert.True(t, captured.Stream)
	assert.InDelta(t, 0.4, captured.Temperature, 1e-6)
	assert.InDelta(t, 0.7, captured.TopP, 1e-6)
	assert.Equal(t, 512, captured.MaxTokens)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, sunyata.RoleSystem, captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Content)
}

func TestStreamChatZeroTemperature(t *testing.T) {
	var captured capturedRequest
	var auth string
	srv := sseServer(t, &captured, &auth, []string{"[DONE]"})
	defer srv.Close()

	p := NewProvider(StaticConfig{BaseURL: srv.URL + "/v1", Token: "hf_test"})
	err := p.StreamChat(context.Background(), sunyata.ChatRequest{Model: "m", TopP: 0.7, MaxTokens: 1}, func(string) {})
	require.NoError(t, err)

	assert.Greater(t, captured.Temperature, 0.0)
	assert.Less(t, captured.Temperature, 1e-30)
}

func TestStreamChatAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"Invalid credentials in Authorization header","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	p := NewProvider(StaticConfig{BaseURL: srv.URL + "/v1", Token: "bad"})

	called := false
	err := p.StreamChat(context.Background(), sunyata.ChatRequest{Model: "m", TopP: 0.7, MaxTokens: 1}, func(string) { called = true })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")
	assert.False(t, called)
}

func TestStreamChatConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p := NewProvider(StaticConfig{BaseURL: url + "/v1", Token: "hf_test", Timeout: time.Second})
	err := p.StreamChat(context.Background(), sunyata.ChatRequest{Model: "m", TopP: 0.7, MaxTokens: 1}, func(string) {})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to create chat completion stream"))
}

func TestStreamChatOutlastsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		fmt.Fprintf(w, "data: %s\n\n", chunk("slow "))
		flusher.Flush()
		time.Sleep(300 * time.Millisecond)
		fmt.Fprintf(w, "data: %s\n\n", chunk("answer"))
		fmt.Fprint(w, "data: [DONE]\n\n")
		flusher.Flush()
	}))
	defer srv.Close()

	p := NewProvider(StaticConfig{BaseURL: srv.URL + "/v1", Token: "hf_test", Timeout: 100 * time.Millisecond})

	var got []string
	err := p.StreamChat(context.Background(), sunyata.ChatRequest{Model: "m", TopP: 0.7, MaxTokens: 1}, func(s string) { got = append(got, s) })
	require.NoError(t, err)
	assert.Equal(t, []string{"slow ", "answer"}, got)
}

func TestStreamChatHeaderTimeout(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(done)

	p := NewProvider(StaticConfig{BaseURL: srv.URL + "/v1", Token: "hf_test", Timeout: 100 * time.Millisecond})
	err := p.StreamChat(context.Background(), sunyata.ChatRequest{Model: "m", TopP: 0.7, MaxTokens: 1}, func(string) {})
	require.Error(t, err)
}

func TestTemperature(t *testing.T) {
	assert.Equal(t, float32(0.5), temperature(0.5))
	assert.Greater(t, temperature(0), float32(0))
}

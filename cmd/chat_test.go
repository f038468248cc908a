package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/longkey1/sunyata/internal/sunyata"
	"github.com/longkey1/sunyata/internal/sunyata/assistant"
	"github.com/longkey1/sunyata/internal/sunyata/prompt"
	"github.com/longkey1/sunyata/internal/sunyata/relay"
	"github.com/longkey1/sunyata/internal/sunyata/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatState(t *testing.T, reply ...string) (*chatState, *[]sunyata.ChatRequest, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var requests []sunyata.ChatRequest
	streamer := sunyata.StreamerFunc(func(ctx context.Context, req sunyata.ChatRequest, onDelta func(string)) error {
		requests = append(requests, req)
		for _, s := range reply {
			onDelta(s)
		}
		return nil
	})
	r := relay.New(streamer, relay.Options{Model: "m", TopP: 0.7, MaxTokens: 512}, nil)
	a := assistant.New(r, assistant.Options{HistoryLimit: 5}, nil)

	var out, errOut bytes.Buffer
	st := &chatState{
		assistant: a,
		sess:      session.NewSession(),
		request: assistant.Request{
			Language:    sunyata.LanguagePython,
			TaskType:    sunyata.TaskWriteNewCode,
			Temperature: 0.7,
		},
		out:    &out,
		errOut: &errOut,
	}
	return st, &requests, &out, &errOut
}

func TestChatSettingsCommands(t *testing.T) {
	st, _, _, errOut := newChatState(t)
	ctx := context.Background()

	assert.True(t, st.handleCommand(ctx, "/language c++"))
	assert.Equal(t, sunyata.LanguageCPP, st.request.Language)

	assert.True(t, st.handleCommand(ctx, "/task code review"))
	assert.Equal(t, sunyata.TaskCodeReview, st.request.TaskType)

	assert.True(t, st.handleCommand(ctx, "/temp 0.2"))
	assert.InDelta(t, 0.2, st.request.Temperature, 1e-6)

	assert.True(t, st.handleCommand(ctx, "/req testing"))
	assert.True(t, st.request.Requirements.Testing)
	assert.True(t, st.handleCommand(ctx, "/req testing"))
	assert.False(t, st.request.Requirements.Testing)

	errOut.Reset()
	assert.True(t, st.handleCommand(ctx, "/temp 1.5"))
	assert.InDelta(t, 0.2, st.request.Temperature, 1e-6)
	assert.Contains(t, errOut.String(), "between 0.0 and 1.0")

	errOut.Reset()
	assert.True(t, st.handleCommand(ctx, "/temp NaN"))
	assert.InDelta(t, 0.2, st.request.Temperature, 1e-6)
	assert.Contains(t, errOut.String(), "between 0.0 and 1.0")

	errOut.Reset()
	assert.True(t, st.handleCommand(ctx, "/language cobol"))
	assert.Equal(t, sunyata.LanguageCPP, st.request.Language)
	assert.Contains(t, errOut.String(), "unknown language")

	assert.True(t, st.handleCommand(ctx, "/nope"))
	assert.False(t, st.handleCommand(ctx, "/exit"))
}

func TestChatSubmitAndHistory(t *testing.T) {
	st, requests, out, errOut := newChatState(t, "Hel", "lo")
	ctx := context.Background()

	st.request.Requirements = prompt.Requirements{Security: true}
	st.submit(ctx, sunyata.ActionGenerate, "reverse a list")

	require.Len(t, *requests, 1)
	assert.Contains(t, out.String(), "Hello")
	user := (*requests)[0].Messages[1].Content
	assert.Equal(t, "Task Type: Write New Code\nLanguage: Python\nRequest: reverse a list\nRequirements: implement security best practices", user)

	assert.True(t, st.handleCommand(ctx, "/debug x = 1/0"))
	require.Len(t, *requests, 2)
	assert.Equal(t, "Debug this Python code: x = 1/0", (*requests)[1].Messages[1].Content)

	errOut.Reset()
	st.handleCommand(ctx, "/history")
	assert.Contains(t, errOut.String(), "Interaction 2")
	assert.Contains(t, errOut.String(), "Interaction 1")
	assert.Equal(t, 2, st.sess.Len())
}

func TestChatSubmitEmptyQuery(t *testing.T) {
	st, requests, out, errOut := newChatState(t, "x")

	st.handleCommand(context.Background(), "/analyze")

	assert.Empty(t, *requests)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Please enter your code or query first!")
	assert.Equal(t, 0, st.sess.Len())
}

// Package huggingface implements sunyata.Streamer against the Hugging Face
// inference router, which speaks the OpenAI chat completions protocol.
package huggingface

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/longkey1/sunyata/internal/sunyata"
	"github.com/sashabaranov/go-openai"
)

const (
	ProviderName   = "huggingface"
	DefaultBaseURL = "https://router.huggingface.co/v1"
)

// Config defines the configuration interface for the provider
type Config interface {
	GetBaseURL() string
	GetToken() string
	GetTimeout() time.Duration
}

// Provider implements sunyata.Streamer for the Hugging Face router
type Provider struct {
	client *openai.Client
}

// NewProvider creates a new provider instance
func NewProvider(config Config) *Provider {
	cc := openai.DefaultConfig(config.GetToken())
	cc.BaseURL = DefaultBaseURL
	if config.GetBaseURL() != "" {
		cc.BaseURL = config.GetBaseURL()
	}
	cc.HTTPClient = &http.Client{Transport: newTransport(config.GetTimeout())}
	return &Provider{client: openai.NewClientWithConfig(cc)}
}

// newTransport bounds the wait for response headers only. The streamed body
// may take as long as the generation needs.
func newTransport(timeout time.Duration) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.ResponseHeaderTimeout = timeout
	return t
}

// StreamChat opens a streaming chat completion and forwards every non-empty
// delta of the first choice to onDelta.
func (p *Provider) StreamChat(ctx context.Context, req sunyata.ChatRequest, onDelta func(string)) error {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content})
	}

	stream, err := p.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    msgs,
		Temperature: temperature(req.Temperature),
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
		Stream:      true,
	})
	if err != nil {
		return fmt.Errorf("failed to create chat completion stream: %w", err)
	}
	defer stream.Close()

	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to receive stream chunk: %w", err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if content := chunk.Choices[0].Delta.Content; content != "" {
			onDelta(content)
		}
	}
}

// temperature maps 0 to the smallest positive float; the client drops zero
// values from the request body, which would leave the endpoint default in place.
func temperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

// StaticConfig is a Config backed by plain values.
type StaticConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

func (c StaticConfig) GetBaseURL() string        { return c.BaseURL }
func (c StaticConfig) GetToken() string          { return c.Token }
func (c StaticConfig) GetTimeout() time.Duration { return c.Timeout }

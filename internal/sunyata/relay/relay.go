// Package relay drives one streaming completion per submission and turns
// endpoint failures into an inline error fragment.
package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/longkey1/sunyata/internal/sunyata"
)

// ErrTemperatureRange is returned when the temperature is outside [0, 1].
var ErrTemperatureRange = errors.New("temperature must be between 0.0 and 1.0")

// ErrorPrefix starts the single fragment emitted when the endpoint fails.
const ErrorPrefix = "Error: "

// Options are the fixed sampling parameters of every request.
type Options struct {
	Model     string
	TopP      float32
	MaxTokens int
}

// Relay forwards a conversation to a Streamer and relays its fragments.
type Relay struct {
	streamer sunyata.Streamer
	opts     Options
	logger   *log.Logger
}

// New creates a Relay. A nil logger discards log output.
func New(streamer sunyata.Streamer, opts Options, logger *log.Logger) *Relay {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Relay{streamer: streamer, opts: opts, logger: logger}
}

// Options returns the sampling parameters the relay was created with.
func (r *Relay) Options() Options {
	return r.opts
}

// ValidateTemperature reports whether t can be sent to the endpoint.
// NaN fails every comparison, so the range is checked as a positive condition.
func ValidateTemperature(t float32) error {
	if !(t >= 0 && t <= 1) {
		return fmt.Errorf("%w (got %v)", ErrTemperatureRange, t)
	}
	return nil
}

// Stream sends messages to the endpoint and calls sink once for every
// non-empty fragment, in arrival order, before returning. If the endpoint
// fails, sink receives one final fragment "Error: <message>" and the failure
// is returned alongside the text; it is informational, the stream is complete
// either way. The returned text is everything sink received. A nil sink
// discards fragments.
//
// Stream returns ErrTemperatureRange without calling the endpoint or sink
// when temperature is outside [0, 1] or NaN.
func (r *Relay) Stream(ctx context.Context, messages []sunyata.Message, temperature float32, sink func(string)) (string, error) {
	if err := ValidateTemperature(temperature); err != nil {
		return "", err
	}
	if sink == nil {
		sink = func(string) {}
	}

	start := time.Now()
	var buf strings.Builder
	fragments := 0
	emit := func(s string) {
		if s == "" {
			return
		}
		fragments++
		buf.WriteString(s)
		sink(s)
	}

	err := r.streamer.StreamChat(ctx, sunyata.ChatRequest{
		Model:       r.opts.Model,
		Messages:    messages,
		Temperature: temperature,
		TopP:        r.opts.TopP,
		MaxTokens:   r.opts.MaxTokens,
	}, emit)
	if err != nil {
		r.logger.Printf("STREAM_ERROR | model=%s fragments=%d duration=%s error=%v",
			r.opts.Model, fragments, time.Since(start).Round(time.Millisecond), err)
		emit(ErrorPrefix + err.Error())
		return buf.String(), err
	}

	r.logger.Printf("STREAM_DONE | model=%s fragments=%d chars=%d duration=%s",
		r.opts.Model, fragments, buf.Len(), time.Since(start).Round(time.Millisecond))
	return buf.String(), nil
}

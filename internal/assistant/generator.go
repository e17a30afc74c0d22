// Package assistant wraps the external text generation model behind the
// four usage patterns of the dashboard: log analysis, document summaries,
// compliance questions and the context aware chat.
package assistant

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable is returned by generators that have no credentials
	ErrUnavailable = errors.New("text generation is not configured")

	// ErrOffline is reported when the simulated connection is down
	ErrOffline = errors.New("connectivity lost")
)

// Speaker is the author of a conversation turn
type Speaker string

const (
	SpeakerUser  Speaker = "user"
	SpeakerModel Speaker = "model"
)

// Message is one conversation turn
type Message struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Request is a single generation call. Messages holds the whole
// conversation, ending with the user turn to answer.
type Request struct {
	Model             string
	SystemInstruction string
	Messages          []Message
}

// Chunk is one fragment of a streamed response. A chunk with Err set is the
// last value sent on the channel.
type Chunk struct {
	Text string
	Err  error
}

// Generator produces text from a request
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)

	// Stream sends fragments until the response completes, an error occurs
	// or ctx is cancelled. The channel is always closed.
	Stream(ctx context.Context, req Request) <-chan Chunk
}

// unavailableGenerator fails every call. It stands in when no API key is set.
type unavailableGenerator struct{}

// NewUnavailableGenerator returns a Generator that always fails with ErrUnavailable
func NewUnavailableGenerator() Generator {
	return unavailableGenerator{}
}

func (unavailableGenerator) Generate(context.Context, Request) (string, error) {
	return "", ErrUnavailable
}

func (unavailableGenerator) Stream(context.Context, Request) <-chan Chunk {
	ch := make(chan Chunk, 1)
	ch <- Chunk{Err: ErrUnavailable}
	close(ch)
	return ch
}

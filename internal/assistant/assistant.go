package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"mediaccess/internal/knowledge"

	"github.com/sirupsen/logrus"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 30 * time.Second
)

// Config tunes model calls
type Config struct {
	Model   string
	Timeout time.Duration
}

// Reply is what callers show to the user. Fallback is set when Text is a
// canned message instead of model output.
type Reply struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

// StreamEvent is one step of a streamed chat answer. The final event has
// Done set and carries the whole accumulated text.
type StreamEvent struct {
	Text     string `json:"text"`
	Done     bool   `json:"done"`
	Fallback bool   `json:"fallback"`
}

// OfflineFunc reports whether the simulated connection is down
type OfflineFunc func() bool

// Assistant turns dashboard requests into model calls and never lets a
// model failure reach the caller as an error
type Assistant struct {
	gen      Generator
	kb       *knowledge.Base
	cfg      Config
	log      *logrus.Logger
	offline  OfflineFunc
	sessions *SessionStore
}

// New creates an Assistant. A nil offline func means always online.
func New(gen Generator, kb *knowledge.Base, cfg Config, log *logrus.Logger, offline OfflineFunc) *Assistant {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if offline == nil {
		offline = func() bool { return false }
	}
	return &Assistant{
		gen:      gen,
		kb:       kb,
		cfg:      cfg,
		log:      log,
		offline:  offline,
		sessions: NewSessionStore(),
	}
}

// Sessions exposes chat history
func (a *Assistant) Sessions() *SessionStore {
	return a.sessions
}

// AnalyzeLog explains the risk behind a security log line
func (a *Assistant) AnalyzeLog(ctx context.Context, logData string) Reply {
	return a.oneShot(ctx, "analyze security log", analysisPrompt(logData), FallbackAnalysis, EmptyAnalysis)
}

// Summarize produces an investor summary of a document
func (a *Assistant) Summarize(ctx context.Context, doc string) Reply {
	return a.oneShot(ctx, "summarize document", summaryPrompt(doc), FallbackSummary, EmptySummary)
}

// AskCompliance answers a HIPAA/GDPR question about the platform
func (a *Assistant) AskCompliance(ctx context.Context, question string) Reply {
	return a.oneShot(ctx, "answer compliance question", compliancePrompt(question), FallbackCompliance, EmptyCompliance)
}

func (a *Assistant) oneShot(ctx context.Context, what, prompt, fallback, empty string) Reply {
	if a.offline() {
		return Reply{Text: fallback, Fallback: true}
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	text, err := a.gen.Generate(ctx, Request{
		Model:    a.cfg.Model,
		Messages: []Message{{Speaker: SpeakerUser, Text: prompt}},
	})
	if err != nil {
		a.logFailure(what, err)
		return Reply{Text: fallback, Fallback: true}
	}
	if strings.TrimSpace(text) == "" {
		return Reply{Text: empty}
	}
	return Reply{Text: text}
}

func (a *Assistant) chatRequest(sessionID, message, liveContext string) Request {
	msgs := append(a.sessions.History(sessionID), Message{Speaker: SpeakerUser, Text: message})
	return Request{
		Model:             a.cfg.Model,
		SystemInstruction: SystemInstruction(liveContext, a.kb),
		Messages:          msgs,
	}
}

// Chat answers one message of a multi-turn conversation. liveContext is
// the current state digest; the exchange is recorded only when the model
// answered with text.
func (a *Assistant) Chat(ctx context.Context, sessionID, message, liveContext string) Reply {
	if a.offline() {
		return Reply{Text: FallbackChat, Fallback: true}
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	text, err := a.gen.Generate(ctx, a.chatRequest(sessionID, message, liveContext))
	if err != nil {
		a.logFailure("chat", err)
		return Reply{Text: FallbackChat, Fallback: true}
	}
	if strings.TrimSpace(text) == "" {
		return Reply{Text: EmptyChat}
	}

	a.sessions.Record(sessionID,
		Message{Speaker: SpeakerUser, Text: message},
		Message{Speaker: SpeakerModel, Text: text},
	)
	return Reply{Text: text}
}

// ChatStream is Chat delivered incrementally. Each event carries one new
// fragment; the last event has Done set and the full text. Cancelling ctx
// stops the producer and closes the channel without a Done event.
func (a *Assistant) ChatStream(ctx context.Context, sessionID, message, liveContext string) <-chan StreamEvent {
	out := make(chan StreamEvent)

	go func() {
		defer close(out)

		send := func(ev StreamEvent) bool {
			select {
			case out <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if a.offline() {
			send(StreamEvent{Text: FallbackChat, Done: true, Fallback: true})
			return
		}

		callCtx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()

		var full strings.Builder
		for chunk := range a.gen.Stream(callCtx, a.chatRequest(sessionID, message, liveContext)) {
			if chunk.Err != nil {
				if ctx.Err() != nil {
					return
				}
				a.logFailure("stream chat", chunk.Err)
				send(StreamEvent{Text: FallbackChat, Done: true, Fallback: true})
				return
			}
			full.WriteString(chunk.Text)
			if !send(StreamEvent{Text: chunk.Text}) {
				return
			}
		}

		if ctx.Err() != nil {
			return
		}
		if err := callCtx.Err(); err != nil {
			a.logFailure("stream chat", err)
			send(StreamEvent{Text: FallbackChat, Done: true, Fallback: true})
			return
		}

		text := full.String()
		if strings.TrimSpace(text) == "" {
			send(StreamEvent{Text: EmptyChat, Done: true})
			return
		}

		a.sessions.Record(sessionID,
			Message{Speaker: SpeakerUser, Text: message},
			Message{Speaker: SpeakerModel, Text: text},
		)
		send(StreamEvent{Text: text, Done: true})
	}()

	return out
}

func (a *Assistant) logFailure(what string, err error) {
	if a.log == nil {
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		a.log.Warnf("Failed to %s: timed out after %s", what, a.cfg.Timeout)
		return
	}
	a.log.Warnf("Failed to %s: %+v", what, err)
}

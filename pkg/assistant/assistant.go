package assistant

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dd0wney/cluso-algoviz/pkg/logging"
	"github.com/dd0wney/cluso-algoviz/pkg/metrics"
	"github.com/dd0wney/cluso-algoviz/pkg/model"
)

const noReply = "Sorry, I couldn't generate a response."

// Assistant answers DSA questions. Resolution order: greeting, local table,
// remote model, generic fallback. Remote failures never reach the caller.
type Assistant struct {
	knowledge *Knowledge
	remote    Completer
	cfg       Config
	pick      func(n int) int

	// consecutive remote failures, reset by a successful completion
	failures atomic.Int64

	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithRemote sets the remote tier. A nil completer disables it.
func WithRemote(c Completer) Option {
	return func(a *Assistant) { a.remote = c }
}

// WithKnowledge replaces the built-in answer table.
func WithKnowledge(k *Knowledge) Option {
	return func(a *Assistant) { a.knowledge = k }
}

// WithLogger sets the assistant's logger.
func WithLogger(l logging.Logger) Option {
	return func(a *Assistant) { a.logger = l }
}

// WithMetrics sets the registry answers are counted in.
func WithMetrics(r *metrics.Registry) Option {
	return func(a *Assistant) { a.metrics = r }
}

// WithPicker sets how canned replies are chosen among alternatives.
func WithPicker(pick func(n int) int) Option {
	return func(a *Assistant) { a.pick = pick }
}

// New creates an assistant. When cfg enables the remote tier and carries
// an API key, an OpenAI-compatible client is created for it unless
// WithRemote supplied one.
func New(cfg Config, opts ...Option) (*Assistant, error) {
	a := &Assistant{
		knowledge: BuiltinKnowledge(),
		cfg:       cfg,
		pick:      rand.IntN,
		logger:    logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(logging.Component("assistant"))

	if a.remote == nil && cfg.Enabled && cfg.APIKey != "" {
		client, err := NewOpenAIClient(cfg)
		if err != nil {
			return nil, err
		}
		a.remote = client
	}
	if a.cfg.SystemPrompt == "" {
		a.cfg.SystemPrompt = DefaultSystemPrompt
	}
	return a, nil
}

// RemoteEnabled reports whether questions may fall through to the remote tier.
func (a *Assistant) RemoteEnabled() bool { return a.remote != nil }

// RemoteStatus reports whether the remote tier is configured and how many
// completions in a row have failed.
func (a *Assistant) RemoteStatus() (enabled bool, failures int) {
	return a.remote != nil, int(a.failures.Load())
}

// Ask answers a single question.
func (a *Assistant) Ask(ctx context.Context, question string) (Answer, error) {
	return a.Reply(ctx, []Message{{Role: RoleUser, Content: question}})
}

// Reply answers the last user message of a conversation. The whole history
// is forwarded when the remote tier is used.
func (a *Assistant) Reply(ctx context.Context, history []Message) (Answer, error) {
	question := lastUserMessage(history)
	if question == "" {
		return Answer{}, model.NewError("ask").Cause(model.ErrInvalidInput).Notice("No user message found").Err()
	}

	start := time.Now()
	ans := a.resolve(ctx, question, history)
	elapsed := time.Since(start)

	if a.metrics != nil {
		a.metrics.RecordAssistantAnswer(string(ans.Source), elapsed)
	}
	a.logger.Debug("question answered",
		logging.Source(string(ans.Source)),
		logging.String("topic", ans.Topic),
		logging.Latency(elapsed),
	)
	return ans, nil
}

func (a *Assistant) resolve(ctx context.Context, question string, history []Message) Answer {
	k := a.knowledge
	if k.IsGreeting(question) {
		return Answer{Text: k.GreetingReplies[a.pick(len(k.GreetingReplies))], Source: SourceGreeting}
	}
	if t, ok := k.Lookup(question); ok {
		return Answer{Text: t.Answer, Source: SourceLocal, Topic: t.Key}
	}
	if a.remote != nil {
		if text, err := a.complete(ctx, history); err == nil {
			return Answer{Text: text, Source: SourceRemote}
		}
	}
	return Answer{Text: k.Fallback(a.pick(len(k.Fallbacks)), question), Source: SourceFallback}
}

func (a *Assistant) complete(ctx context.Context, history []Message) (string, error) {
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	text, err := a.remote.Complete(ctx, a.cfg.SystemPrompt, history)
	if err != nil {
		a.failures.Add(1)
		if a.metrics != nil {
			a.metrics.RecordAssistantRemoteError()
		}
		a.logger.Warn("remote completion failed, using fallback", logging.Error(err))
		return "", err
	}
	a.failures.Store(0)
	if strings.TrimSpace(text) == "" {
		return noReply, nil
	}
	return strings.TrimSpace(text), nil
}

func lastUserMessage(history []Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == RoleUser {
			return strings.TrimSpace(history[i].Content)
		}
	}
	return ""
}

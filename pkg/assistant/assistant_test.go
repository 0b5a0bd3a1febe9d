package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-algoviz/pkg/metrics"
	"github.com/dd0wney/cluso-algoviz/pkg/model"
)

type fakeCompleter struct {
	reply   string
	err     error
	calls   int
	system  string
	history []Message
}

func (f *fakeCompleter) Complete(_ context.Context, system string, history []Message) (string, error) {
	f.calls++
	f.system = system
	f.history = history
	return f.reply, f.err
}

func first(int) int { return 0 }

func newAssistant(t *testing.T, opts ...Option) *Assistant {
	t.Helper()
	a, err := New(DefaultConfig(), append([]Option{WithPicker(first)}, opts...)...)
	require.NoError(t, err)
	return a
}

func TestKnowledge_Builtin(t *testing.T) {
	k := BuiltinKnowledge()
	assert.NotEmpty(t, k.Topics)
	assert.NotEmpty(t, k.Greetings)
	for _, topic := range k.Topics {
		assert.Equal(t, strings.ToLower(topic.Key), topic.Key)
		assert.NotEmpty(t, topic.Answer, topic.Key)
	}
}

func TestKnowledge_IsGreeting(t *testing.T) {
	k := BuiltinKnowledge()
	tests := []struct {
		q    string
		want bool
	}{
		{"hi", true},
		{"Hello", true},
		{"hey there", true},
		{"hello!", true},
		{"  good morning  ", true},
		{"history of sorting", false},
		{"what is a heap", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, k.IsGreeting(tt.q), tt.q)
	}
}

func TestKnowledge_Lookup(t *testing.T) {
	k := BuiltinKnowledge()
	tests := []struct {
		q       string
		wantKey string
	}{
		{"bubble sort", "bubble sort"},
		{"Explain Merge Sort please", "merge sort"},
		{"how does a binary search tree delete work?", "binary search tree"},
		{"binary search on arrays", "binary search"},
		{"what is heap sort", "heap sort"},
		{"min heap vs max heap", "heap"},
		{"teach me topological sort", "topological sort"},
	}
	for _, tt := range tests {
		topic, ok := k.Lookup(tt.q)
		require.True(t, ok, tt.q)
		assert.Equal(t, tt.wantKey, topic.Key, tt.q)
	}

	_, ok := k.Lookup("red-black rotations")
	assert.False(t, ok)
}

func TestLoadKnowledge_Errors(t *testing.T) {
	_, err := LoadKnowledge([]byte("topics: [unclosed"))
	assert.Error(t, err)
	_, err = LoadKnowledge([]byte("topics: []"))
	assert.Error(t, err)
	_, err = LoadKnowledge([]byte("greeting_replies: [hi]\nfallbacks: [\"no idea\"]"))
	assert.ErrorContains(t, err, "fallback 0 lacks {question}")
}

func TestFallback_QuotesQuestionVerbatim(t *testing.T) {
	k, err := LoadKnowledge([]byte("greeting_replies: [hi]\nfallbacks: [\"100% unsure about {question}\"]"))
	require.NoError(t, err)
	assert.Equal(t, "100% unsure about 50% rule", k.Fallback(0, "50% rule"))
	assert.Equal(t, "100% unsure about tries", k.Fallback(3, "tries"))
}

func TestAsk_ResolutionOrder(t *testing.T) {
	remote := &fakeCompleter{reply: "  AVL trees rebalance with rotations.  "}
	a := newAssistant(t, WithRemote(remote))
	ctx := context.Background()

	ans, err := a.Ask(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, SourceGreeting, ans.Source)

	ans, err = a.Ask(ctx, "what is quick sort?")
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, ans.Source)
	assert.Equal(t, "quick sort", ans.Topic)
	assert.Zero(t, remote.calls, "local answers never call the remote tier")

	ans, err = a.Ask(ctx, "what is an AVL tree?")
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, ans.Source)
	assert.Equal(t, "AVL trees rebalance with rotations.", ans.Text)
	assert.Equal(t, DefaultSystemPrompt, remote.system)
}

func TestAsk_RemoteFailureFallsBack(t *testing.T) {
	reg := metrics.NewRegistry()
	remote := &fakeCompleter{err: errors.New("quota exceeded")}
	a := newAssistant(t, WithRemote(remote), WithMetrics(reg))

	ans, err := a.Ask(context.Background(), "splay trees")
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, ans.Source)
	assert.Contains(t, ans.Text, `"splay trees"`)
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.AssistantRemoteErrors))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.AssistantAnswersTotal.WithLabelValues("fallback")))
}

func TestRemoteStatus_CountsConsecutiveFailures(t *testing.T) {
	remote := &fakeCompleter{err: errors.New("unreachable")}
	a := newAssistant(t, WithRemote(remote))

	for range 2 {
		_, err := a.Ask(context.Background(), "splay trees")
		require.NoError(t, err)
	}
	enabled, failures := a.RemoteStatus()
	assert.True(t, enabled)
	assert.Equal(t, 2, failures)

	remote.err = nil
	remote.reply = "Splay trees move accessed nodes to the root."
	_, err := a.Ask(context.Background(), "splay trees")
	require.NoError(t, err)
	_, failures = a.RemoteStatus()
	assert.Zero(t, failures)
}

func TestAsk_EmptyRemoteReply(t *testing.T) {
	a := newAssistant(t, WithRemote(&fakeCompleter{reply: "   "}))
	ans, err := a.Ask(context.Background(), "splay trees")
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, ans.Source)
	assert.Equal(t, noReply, ans.Text)
}

func TestAsk_NoRemoteUsesFallback(t *testing.T) {
	a := newAssistant(t)
	assert.False(t, a.RemoteEnabled())

	ans, err := a.Ask(context.Background(), "fenwick tree")
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, ans.Source)
	assert.Equal(t, BuiltinKnowledge().Fallback(0, "fenwick tree"), ans.Text)
}

func TestReply_History(t *testing.T) {
	remote := &fakeCompleter{reply: "ok"}
	a := newAssistant(t, WithRemote(remote))
	history := []Message{
		{Role: RoleUser, Content: "tell me about splay trees"},
		{Role: RoleAssistant, Content: "They move accessed nodes to the root."},
		{Role: RoleUser, Content: "and their amortized cost?"},
	}
	ans, err := a.Reply(context.Background(), history)
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, ans.Source)
	assert.Len(t, remote.history, 3)

	_, err = a.Reply(context.Background(), []Message{{Role: RoleAssistant, Content: "hi"}})
	assert.True(t, model.IsInvalidInput(err))
	_, err = a.Ask(context.Background(), "   ")
	assert.True(t, model.IsInvalidInput(err))
}

func TestNew_RemoteFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	a, err := New(cfg)
	require.NoError(t, err)
	assert.False(t, a.RemoteEnabled(), "no api key keeps the remote tier off")

	cfg.APIKey = "sk-test"
	a, err = New(cfg)
	require.NoError(t, err)
	assert.True(t, a.RemoteEnabled())
}

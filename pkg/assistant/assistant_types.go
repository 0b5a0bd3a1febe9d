package assistant

import (
	"context"
	"time"
)

// Source names the resolution tier that produced an answer.
type Source string

const (
	SourceGreeting Source = "greeting"
	SourceLocal    Source = "local"
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,max=4000"`
}

// Answer is the assistant's reply to one question.
type Answer struct {
	Text   string `json:"reply"`
	Source Source `json:"source"`
	Topic  string `json:"topic,omitempty"`
}

// Completer produces a reply from a hosted language model.
type Completer interface {
	Complete(ctx context.Context, system string, history []Message) (string, error)
}

// Config configures the remote tier.
type Config struct {
	Enabled      bool
	BaseURL      string
	Model        string
	APIKey       string
	Timeout      time.Duration
	SystemPrompt string
	MaxTokens    int
	Temperature  float32
}

// DefaultSystemPrompt steers the remote model towards step-by-step DSA
// explanations.
const DefaultSystemPrompt = `You are a helpful Data Structures and Algorithms (DSA) assistant.
Explain algorithms and data structures clearly and step by step.

For an algorithm: give a short definition, walk through how it works, state its time and space complexity, name typical use cases, and add pseudocode when it helps.
For a data structure: define it, list its properties, give the common operations with their complexities, compare it with similar structures when relevant, and name real-world applications.`

// DefaultConfig returns the remote tier defaults. The remote tier stays
// disabled until an API key is configured.
func DefaultConfig() Config {
	return Config{
		BaseURL:      "https://api.openai.com/v1",
		Model:        "gpt-4o-mini",
		Timeout:      30 * time.Second,
		SystemPrompt: DefaultSystemPrompt,
		MaxTokens:    1000,
		Temperature:  0.7,
	}
}

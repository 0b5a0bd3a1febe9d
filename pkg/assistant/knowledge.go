package assistant

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed responses.yaml
var responsesYAML []byte

// QuestionPlaceholder marks where a fallback template quotes the question.
const QuestionPlaceholder = "{question}"

// Topic is one locally answered subject.
type Topic struct {
	Key    string `yaml:"key"`
	Answer string `yaml:"answer"`
}

// Knowledge is the local answer table.
type Knowledge struct {
	Greetings       []string `yaml:"greetings"`
	GreetingReplies []string `yaml:"greeting_replies"`
	Fallbacks       []string `yaml:"fallbacks"`
	Topics          []Topic  `yaml:"topics"`
}

// LoadKnowledge parses an answer table.
func LoadKnowledge(data []byte) (*Knowledge, error) {
	var k Knowledge
	if err := yaml.Unmarshal(data, &k); err != nil {
		return nil, fmt.Errorf("parse answer table: %w", err)
	}
	if len(k.GreetingReplies) == 0 || len(k.Fallbacks) == 0 {
		return nil, fmt.Errorf("answer table needs greeting replies and fallbacks")
	}
	for i, f := range k.Fallbacks {
		if !strings.Contains(f, QuestionPlaceholder) {
			return nil, fmt.Errorf("fallback %d lacks %s", i, QuestionPlaceholder)
		}
	}
	for i := range k.Topics {
		k.Topics[i].Key = strings.ToLower(k.Topics[i].Key)
		k.Topics[i].Answer = strings.TrimSpace(k.Topics[i].Answer)
	}
	return &k, nil
}

// BuiltinKnowledge returns the embedded answer table.
func BuiltinKnowledge() *Knowledge {
	k, err := LoadKnowledge(responsesYAML)
	if err != nil {
		panic(err)
	}
	return k
}

// IsGreeting reports whether q is, or starts with, a plain greeting.
func (k *Knowledge) IsGreeting(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	for _, g := range k.Greetings {
		if q == g || strings.HasPrefix(q, g+" ") || strings.HasPrefix(q, g+"!") {
			return true
		}
	}
	return false
}

// Lookup finds the local answer for q: an exact key match first, then the
// first key, in table order, that q contains.
func (k *Knowledge) Lookup(q string) (Topic, bool) {
	q = strings.ToLower(strings.TrimSpace(q))
	for _, t := range k.Topics {
		if q == t.Key {
			return t, true
		}
	}
	for _, t := range k.Topics {
		if strings.Contains(q, t.Key) {
			return t, true
		}
	}
	return Topic{}, false
}

// Fallback renders fallback template i for q.
func (k *Knowledge) Fallback(i int, q string) string {
	return strings.ReplaceAll(k.Fallbacks[i%len(k.Fallbacks)], QuestionPlaceholder, q)
}

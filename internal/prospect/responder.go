// Package prospect generates the simulated prospect's side of a practice
// conversation: the in-character reply each turn and the coaching summary
// at session end.
package prospect

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/salesdojo/salesdojo/internal/llm"
	"github.com/salesdojo/salesdojo/internal/models"
)

// historyWindow bounds how many prior turns are replayed to the model each
// reply. Older context is intentionally dropped to cap prompt size.
const historyWindow = 6

// Responder turns conversation state into prospect utterances via the
// completion capability.
type Responder struct {
	completer llm.Completer
}

// NewResponder creates a Responder backed by the given completer.
func NewResponder(c llm.Completer) *Responder {
	return &Responder{completer: c}
}

// Reply produces the prospect's next utterance. The latest turn in
// state.History must be the user turn being answered; the model sees that
// turn plus a trailing window of the turns before it. The output is plain
// text with no structural guarantees.
func (r *Responder) Reply(ctx context.Context, state *models.ConversationState) (string, error) {
	system := buildSystemPrompt(state)

	prior := state.History[:len(state.History)-1]
	if len(prior) > historyWindow {
		prior = prior[len(prior)-historyWindow:]
	}

	messages := make([]llm.Message, 0, len(prior)+1)
	for _, turn := range prior {
		messages = append(messages, llm.Message{Role: messageRole(turn.Role), Content: turn.Content})
	}
	latest := state.History[len(state.History)-1]
	messages = append(messages, llm.Message{Role: "user", Content: latest.Content})

	text, err := r.completer.Complete(ctx, system, messages)
	if err != nil {
		return "", fmt.Errorf("generate prospect reply: %w", err)
	}
	return text, nil
}

func messageRole(role models.Role) string {
	if role == models.RoleUser {
		return "user"
	}
	return "assistant"
}

// Feedback holds the model-authored portion of a session summary.
type Feedback struct {
	KeyMoments          []string `json:"keyMoments"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	OverallFeedback     string   `json:"overallFeedback"`
}

// fallbackFeedback is substituted whenever the model's summary output
// cannot be parsed. Summarize never fails.
func fallbackFeedback() Feedback {
	return Feedback{
		KeyMoments:          []string{"Conversation completed"},
		Strengths:           []string{"Engaged with the prospect"},
		AreasForImprovement: []string{"Continue practicing"},
		OverallFeedback:     "Good effort in this practice session.",
	}
}

// Summarize asks the model for end-of-session feedback over the full
// transcript. Any completion failure or malformed output yields the fixed
// fallback instead of an error.
func (r *Responder) Summarize(ctx context.Context, state *models.ConversationState, duration int) Feedback {
	prompt := buildSummaryPrompt(state, duration)

	text, err := r.completer.Complete(ctx, "", []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		return fallbackFeedback()
	}

	raw, ok := extractJSON(text)
	if !ok {
		return fallbackFeedback()
	}

	var fb Feedback
	if err := json.Unmarshal([]byte(raw), &fb); err != nil {
		return fallbackFeedback()
	}
	return fb
}

// extractJSON returns the first brace-delimited object in text: everything
// from the first "{" through the last "}".
func extractJSON(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

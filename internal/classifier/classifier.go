// Package classifier reclassifies conversational state after each completed
// turn. It is pure and rule-based: given the latest user utterance and the
// current state it returns a sparse set of deltas for the session manager
// to apply.
package classifier

import (
	"strings"

	"github.com/salesdojo/salesdojo/internal/models"
)

// Delta holds the optional state changes computed for one turn. Zero values
// mean "no change". At most one coaching note is produced per turn.
type Delta struct {
	Phase        models.Phase
	Mood         models.Mood
	Topic        string
	Objection    string
	CoachingNote string
}

// NoteDiscovery is recorded when the utterance contains a discovery keyword.
const NoteDiscovery = "Asked good discovery question"

// NoteTooLong is recorded when the utterance runs past the verbosity limit.
const NoteTooLong = "Message too long - let the prospect talk more"

// verbosityLimit is the space-separated token count above which the
// salesperson is flagged for over-talking.
const verbosityLimit = 100

// discoveryKeywords mark good discovery questions and drive the mood ladder.
var discoveryKeywords = []string{
	"why",
	"what",
	"how",
	"tell me about",
	"walk me through",
	"help me understand",
}

// topicKeywords is scanned in priority order; only the first match per turn
// is reported.
var topicKeywords = []string{
	"price",
	"pricing",
	"cost",
	"roi",
	"implementation",
	"timeline",
	"integration",
	"security",
	"support",
}

// Classify computes the deltas for the latest completed turn. The utterance
// considered is the most recent user turn in state.History, lower-cased.
//
// Phase rules form a priority ladder, first match wins. Any phase is
// reachable from any other on each turn; regression is allowed.
func Classify(state *models.ConversationState) Delta {
	utterance := strings.ToLower(state.LastUserTurn())

	var d Delta

	switch {
	case len(state.History) <= 2:
		d.Phase = models.PhaseOpening
	case strings.Contains(utterance, "challenge") || strings.Contains(utterance, "concern"):
		d.Phase = models.PhaseObjectionHandling
	case strings.Contains(utterance, "next step") || strings.Contains(utterance, "demo") || strings.Contains(utterance, "trial"):
		d.Phase = models.PhaseClosing
	case strings.Contains(utterance, "tell me") || strings.Contains(utterance, "what") || strings.Contains(utterance, "how"):
		d.Phase = models.PhaseDiscovery
	}

	if containsAny(utterance, discoveryKeywords) {
		d.CoachingNote = NoteDiscovery
		d.Mood = state.Mood.Escalate()
	}

	// Last writer wins: over-talking replaces the discovery note.
	if len(strings.Fields(utterance)) > verbosityLimit {
		d.CoachingNote = NoteTooLong
	}

	for _, topic := range topicKeywords {
		if strings.Contains(utterance, topic) {
			d.Topic = topic
			break
		}
	}

	// Objection detection is a reserved extension point; no rule populates
	// d.Objection yet.

	return d
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

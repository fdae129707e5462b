package models

import "time"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Phase is the coarse stage the conversation is heuristically believed to
// be in. Phases are reclassified every turn from the latest user utterance,
// so regression (e.g. closing back to opening) is possible.
type Phase string

const (
	PhaseOpening           Phase = "opening"
	PhaseDiscovery         Phase = "discovery"
	PhaseObjectionHandling Phase = "objection_handling"
	PhaseClosing           Phase = "closing"
	PhaseEnded             Phase = "ended"
)

// Turn is one message exchanged by either party. Immutable once appended;
// history order is conversation chronology.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationState is the mutable aggregate for one practice session.
// The session manager is its sole owner; everything else sees snapshots.
type ConversationState struct {
	SessionID     string     `json:"sessionId"`
	Scenario      *Scenario  `json:"scenario"`
	History       []Turn     `json:"messages"`
	Phase         Phase      `json:"phase"`
	Mood          Mood       `json:"prospectMood"`
	Topics        []string   `json:"keyTopicsDiscussed"`
	Objections    []string   `json:"objectionsRaised"`
	CoachingNotes []string   `json:"performanceNotes"`
	StartedAt     time.Time  `json:"startedAt"`
	EndedAt       *time.Time `json:"endedAt,omitempty"`
}

// Ended reports whether the session has been ended.
func (c *ConversationState) Ended() bool {
	return c.Phase == PhaseEnded
}

// HasTopic reports whether the topic was already recorded for this session.
func (c *ConversationState) HasTopic(topic string) bool {
	for _, t := range c.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// LastUserTurn returns the content of the most recent user turn, or "" if
// no user turn exists yet.
func (c *ConversationState) LastUserTurn() string {
	for i := len(c.History) - 1; i >= 0; i-- {
		if c.History[i].Role == RoleUser {
			return c.History[i].Content
		}
	}
	return ""
}

// Clone returns a deep copy of the state. Stores hand out clones so callers
// cannot mutate the owned aggregate behind the manager's back.
func (c *ConversationState) Clone() *ConversationState {
	cp := *c
	cp.History = append([]Turn(nil), c.History...)
	cp.Topics = append([]string(nil), c.Topics...)
	cp.Objections = append([]string(nil), c.Objections...)
	cp.CoachingNotes = append([]string(nil), c.CoachingNotes...)
	if c.EndedAt != nil {
		t := *c.EndedAt
		cp.EndedAt = &t
	}
	return &cp
}

// Package session orchestrates practice conversations: lifecycle (start,
// end, summary) and the per-turn sequence of persona reply, classification,
// and state update.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/salesdojo/salesdojo/internal/catalog"
	"github.com/salesdojo/salesdojo/internal/classifier"
	"github.com/salesdojo/salesdojo/internal/llm"
	"github.com/salesdojo/salesdojo/internal/models"
	"github.com/salesdojo/salesdojo/internal/prospect"
	"github.com/salesdojo/salesdojo/internal/store"
)

// Sentinel errors for the session lifecycle. Wrapped values carry ids;
// callers match with errors.Is.
var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionEnded     = errors.New("session already ended")
)

const (
	defaultReplyTimeout   = 30 * time.Second
	defaultSummaryTimeout = 60 * time.Second
)

// Config tunes the manager. Zero values get defaults.
type Config struct {
	// ReplyTimeout bounds each prospect-reply completion call.
	ReplyTimeout time.Duration
	// SummaryTimeout bounds the end-of-session summary completion call.
	SummaryTimeout time.Duration
}

// Manager owns all conversation state transitions. Operations on the same
// session are serialized through a per-session lock; independent sessions
// proceed in parallel.
type Manager struct {
	catalog   catalog.Catalog
	store     store.SessionStore
	responder *prospect.Responder

	replyTimeout   time.Duration
	summaryTimeout time.Duration
	now            func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager creates a session manager over the given catalog, store, and
// completion capability.
func NewManager(cat catalog.Catalog, st store.SessionStore, completer llm.Completer, cfg Config) *Manager {
	if cfg.ReplyTimeout <= 0 {
		cfg.ReplyTimeout = defaultReplyTimeout
	}
	if cfg.SummaryTimeout <= 0 {
		cfg.SummaryTimeout = defaultSummaryTimeout
	}
	return &Manager{
		catalog:        cat,
		store:          st,
		responder:      prospect.NewResponder(completer),
		replyTimeout:   cfg.ReplyTimeout,
		summaryTimeout: cfg.SummaryTimeout,
		now:            time.Now,
		locks:          make(map[string]*sync.Mutex),
	}
}

// newSessionID generates a new ULID string.
func newSessionID() string {
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(entropy, 0)).String()
}

// sessionLock returns the mutex serializing operations for one sessionId.
// Locks are kept for the process lifetime, matching the store's own scope.
func (m *Manager) sessionLock(id string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	return l
}

// Start resolves the scenario, allocates a fresh session, and stores it.
// The scenario is snapshotted: later catalog edits do not affect the
// session.
func (m *Manager) Start(ctx context.Context, scenarioID string) (*models.ConversationState, error) {
	sc, err := m.catalog.Get(ctx, scenarioID)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, scenarioID)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve scenario: %w", err)
	}

	// Snapshot the scenario so later catalog edits never reach an
	// in-flight session.
	snap := *sc
	snap.PainPoints = append([]string(nil), sc.PainPoints...)

	state := &models.ConversationState{
		SessionID: newSessionID(),
		Scenario:  &snap,
		Phase:     models.PhaseOpening,
		Mood:      sc.InitialMood,
		StartedAt: m.now(),
	}
	m.store.Put(state.SessionID, state)
	return state, nil
}

// TurnResult is what one successful turn returns to the caller.
type TurnResult struct {
	Reply string
	State *models.ConversationState
}

// Turn appends the user's utterance, generates the prospect reply, runs the
// classifier once, applies its deltas, and persists the updated state.
//
// If reply generation fails the user turn stays appended but nothing else
// changes; the caller may retry Turn and a fresh user turn will be appended.
func (m *Manager) Turn(ctx context.Context, sessionID, userText string) (*TurnResult, error) {
	lock := m.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	state, ok := m.store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if state.Ended() {
		return nil, fmt.Errorf("%w: %s", ErrSessionEnded, sessionID)
	}

	state.History = append(state.History, models.Turn{
		Role:      models.RoleUser,
		Content:   userText,
		Timestamp: m.now(),
	})
	// Commit the user turn before the completion call so a responder
	// failure leaves the session consistent and resumable.
	m.store.Put(sessionID, state)

	replyCtx, cancel := context.WithTimeout(ctx, m.replyTimeout)
	defer cancel()
	reply, err := m.responder.Reply(replyCtx, state)
	if err != nil {
		return nil, err
	}

	state.History = append(state.History, models.Turn{
		Role:      models.RoleAssistant,
		Content:   reply,
		Timestamp: m.now(),
	})

	m.apply(state, classifier.Classify(state))
	m.store.Put(sessionID, state)

	return &TurnResult{Reply: reply, State: state}, nil
}

// apply folds classifier deltas into the state.
func (m *Manager) apply(state *models.ConversationState, d classifier.Delta) {
	if d.Phase != "" {
		state.Phase = d.Phase
	}
	if d.Mood != "" {
		state.Mood = d.Mood
	}
	if d.CoachingNote != "" {
		state.CoachingNotes = append(state.CoachingNotes, d.CoachingNote)
	}
	if d.Topic != "" && !state.HasTopic(d.Topic) {
		state.Topics = append(state.Topics, d.Topic)
	}
	if d.Objection != "" {
		state.Objections = append(state.Objections, d.Objection)
	}
}

// End closes the session and returns the performance summary. Ending twice
// fails with ErrSessionEnded; endedAt is set exactly once. The summary step
// itself never fails: malformed model output yields the fixed fallback.
func (m *Manager) End(ctx context.Context, sessionID string) (*models.SessionSummary, error) {
	lock := m.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	state, ok := m.store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if state.Ended() {
		return nil, fmt.Errorf("%w: %s", ErrSessionEnded, sessionID)
	}

	endedAt := m.now()
	state.EndedAt = &endedAt
	state.Phase = models.PhaseEnded
	m.store.Put(sessionID, state)

	duration := int(endedAt.Sub(state.StartedAt).Seconds())

	summaryCtx, cancel := context.WithTimeout(ctx, m.summaryTimeout)
	defer cancel()
	fb := m.responder.Summarize(summaryCtx, state, duration)

	return &models.SessionSummary{
		SessionID:           sessionID,
		Duration:            duration,
		MessageCount:        len(state.History),
		KeyMoments:          fb.KeyMoments,
		Strengths:           fb.Strengths,
		AreasForImprovement: fb.AreasForImprovement,
		OverallFeedback:     fb.OverallFeedback,
	}, nil
}

// Get returns a snapshot of the session state.
func (m *Manager) Get(sessionID string) (*models.ConversationState, error) {
	state, ok := m.store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return state, nil
}

// List returns snapshots of all live sessions.
func (m *Manager) List() []*models.ConversationState {
	return m.store.ListAll()
}

package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdojo/salesdojo/internal/catalog"
	"github.com/salesdojo/salesdojo/internal/llm"
	"github.com/salesdojo/salesdojo/internal/models"
	"github.com/salesdojo/salesdojo/internal/store"
)

// scriptedCompleter returns queued replies in order, or a fixed error.
type scriptedCompleter struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   int
}

func (f *scriptedCompleter) Complete(ctx context.Context, system string, messages []llm.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "Go on.", nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

func newTestManager(fc llm.Completer) *Manager {
	return NewManager(catalog.NewBuiltin(), store.NewMemoryStore(), fc, Config{})
}

func TestStart(t *testing.T) {
	mgr := newTestManager(&scriptedCompleter{})

	state, err := mgr.Start(context.Background(), "cold-call-vp-eng")
	require.NoError(t, err)

	assert.NotEmpty(t, state.SessionID)
	assert.Equal(t, models.PhaseOpening, state.Phase)
	assert.Equal(t, models.MoodSkeptical, state.Mood, "mood seeds from the scenario")
	assert.Empty(t, state.History)
	assert.Nil(t, state.EndedAt)
	assert.False(t, state.StartedAt.IsZero())
}

func TestStart_UnknownScenario(t *testing.T) {
	mgr := newTestManager(&scriptedCompleter{})

	_, err := mgr.Start(context.Background(), "no-such-scenario")
	assert.ErrorIs(t, err, ErrScenarioNotFound)
}

func TestStart_TwiceYieldsIndependentSessions(t *testing.T) {
	mgr := newTestManager(&scriptedCompleter{})
	ctx := context.Background()

	a, err := mgr.Start(ctx, "discovery-cfo")
	require.NoError(t, err)
	b, err := mgr.Start(ctx, "discovery-cfo")
	require.NoError(t, err)
	require.NotEqual(t, a.SessionID, b.SessionID)

	// A topic recorded on one session must not leak into the other.
	_, err = mgr.Turn(ctx, a.SessionID, "What does pricing look like?")
	require.NoError(t, err)

	gotA, err := mgr.Get(a.SessionID)
	require.NoError(t, err)
	gotB, err := mgr.Get(b.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"price"}, gotA.Topics)
	assert.Empty(t, gotB.Topics)
}

func TestTurn_AppendsPairAndClassifies(t *testing.T) {
	mgr := newTestManager(&scriptedCompleter{replies: []string{"Make it quick."}})
	ctx := context.Background()

	state, err := mgr.Start(ctx, "cold-call-vp-eng")
	require.NoError(t, err)

	result, err := mgr.Turn(ctx, state.SessionID, "Hi Sarah, thanks for taking my call.")
	require.NoError(t, err)

	assert.Equal(t, "Make it quick.", result.Reply)
	assert.Len(t, result.State.History, 2, "user and assistant turns appended")
	assert.Equal(t, models.RoleUser, result.State.History[0].Role)
	assert.Equal(t, models.RoleAssistant, result.State.History[1].Role)
	assert.Equal(t, models.PhaseOpening, result.State.Phase, "first turn is always opening")
}

func TestTurn_HistoryStaysEvenAcrossTurns(t *testing.T) {
	mgr := newTestManager(&scriptedCompleter{})
	ctx := context.Background()

	state, err := mgr.Start(ctx, "discovery-cfo")
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		result, err := mgr.Turn(ctx, state.SessionID, "And then?")
		require.NoError(t, err)
		assert.Equal(t, (i+1)*2, len(result.State.History))
	}
}

func TestTurn_SessionNotFound(t *testing.T) {
	mgr := newTestManager(&scriptedCompleter{})

	_, err := mgr.Turn(context.Background(), "missing", "hello?")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestTurn_ResponderFailureKeepsUserTurn(t *testing.T) {
	fc := &scriptedCompleter{err: errors.New("model unavailable")}
	mgr := newTestManager(fc)
	ctx := context.Background()

	state, err := mgr.Start(ctx, "discovery-cfo")
	require.NoError(t, err)

	_, err = mgr.Turn(ctx, state.SessionID, "Hello Michael")
	require.Error(t, err)

	// The user turn is committed; nothing else advanced.
	got, err := mgr.Get(state.SessionID)
	require.NoError(t, err)
	require.Len(t, got.History, 1)
	assert.Equal(t, models.RoleUser, got.History[0].Role)
	assert.Empty(t, got.CoachingNotes)
	assert.Empty(t, got.Topics)

	// The session is resumable: a retry appends a fresh user turn and
	// completes normally.
	fc.mu.Lock()
	fc.err = nil
	fc.mu.Unlock()
	result, err := mgr.Turn(ctx, state.SessionID, "Hello again Michael")
	require.NoError(t, err)
	assert.Len(t, result.State.History, 3)
}

func TestTurn_TopicsNeverDuplicate(t *testing.T) {
	mgr := newTestManager(&scriptedCompleter{})
	ctx := context.Background()

	state, err := mgr.Start(ctx, "discovery-cfo")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := mgr.Turn(ctx, state.SessionID, "Can we discuss security again?")
		require.NoError(t, err)
	}

	got, err := mgr.Get(state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"security"}, got.Topics)
}

func TestTurn_MoodEscalatesOneStep(t *testing.T) {
	mgr := newTestManager(&scriptedCompleter{})
	ctx := context.Background()

	// cold-call-vp-eng starts skeptical.
	state, err := mgr.Start(ctx, "cold-call-vp-eng")
	require.NoError(t, err)

	result, err := mgr.Turn(ctx, state.SessionID, "Walk me through your deployment process")
	require.NoError(t, err)
	assert.Equal(t, models.MoodNeutral, result.State.Mood)
	assert.Equal(t, []string{"Asked good discovery question"}, result.State.CoachingNotes)
}

func TestEnd(t *testing.T) {
	mgr := newTestManager(&scriptedCompleter{replies: []string{
		"Hearing you out.",
		`{"keyMoments":["m1","m2","m3"],"strengths":["s1"],"areasForImprovement":["a1"],"overallFeedback":"Nice."}`,
	}})
	ctx := context.Background()

	state, err := mgr.Start(ctx, "discovery-cfo")
	require.NoError(t, err)
	_, err = mgr.Turn(ctx, state.SessionID, "Hi Michael")
	require.NoError(t, err)

	summary, err := mgr.End(ctx, state.SessionID)
	require.NoError(t, err)

	assert.Equal(t, state.SessionID, summary.SessionID)
	assert.Equal(t, 2, summary.MessageCount)
	assert.GreaterOrEqual(t, summary.Duration, 0)
	assert.Equal(t, []string{"m1", "m2", "m3"}, summary.KeyMoments)
	assert.Equal(t, "Nice.", summary.OverallFeedback)

	got, err := mgr.Get(state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseEnded, got.Phase)
	require.NotNil(t, got.EndedAt)
}

func TestEnd_SummaryFallback(t *testing.T) {
	mgr := newTestManager(&scriptedCompleter{replies: []string{"Sure.", "not json"}})
	ctx := context.Background()

	state, err := mgr.Start(ctx, "discovery-cfo")
	require.NoError(t, err)
	_, err = mgr.Turn(ctx, state.SessionID, "Hello")
	require.NoError(t, err)

	summary, err := mgr.End(ctx, state.SessionID)
	require.NoError(t, err, "summary malformation never fails end")

	assert.Equal(t, 2, summary.MessageCount)
	assert.Equal(t, []string{"Engaged with the prospect"}, summary.Strengths)
}

func TestEnd_SessionNotFound(t *testing.T) {
	mgr := newTestManager(&scriptedCompleter{})

	_, err := mgr.End(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, mgr.List(), "a failed end must not create a session")
}

func TestEnd_Twice(t *testing.T) {
	mgr := newTestManager(&scriptedCompleter{})
	ctx := context.Background()

	state, err := mgr.Start(ctx, "discovery-cfo")
	require.NoError(t, err)

	_, err = mgr.End(ctx, state.SessionID)
	require.NoError(t, err)

	_, err = mgr.End(ctx, state.SessionID)
	assert.ErrorIs(t, err, ErrSessionEnded)
}

func TestTurn_AfterEnd(t *testing.T) {
	mgr := newTestManager(&scriptedCompleter{})
	ctx := context.Background()

	state, err := mgr.Start(ctx, "discovery-cfo")
	require.NoError(t, err)
	_, err = mgr.End(ctx, state.SessionID)
	require.NoError(t, err)

	_, err = mgr.Turn(ctx, state.SessionID, "one more thing")
	assert.ErrorIs(t, err, ErrSessionEnded)
}

func TestGet_SessionNotFound(t *testing.T) {
	mgr := newTestManager(&scriptedCompleter{})
	_, err := mgr.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestScenarioSnapshotIsFrozen(t *testing.T) {
	// A mutable catalog standing in for an edited one: the session keeps
	// the scenario it started with.
	scenarios := catalog.BuiltinScenarios()
	cat := catalog.NewMemory(scenarios)
	mgr := NewManager(cat, store.NewMemoryStore(), &scriptedCompleter{}, Config{})
	ctx := context.Background()

	state, err := mgr.Start(ctx, "discovery-cfo")
	require.NoError(t, err)
	title := state.Scenario.Title

	scenarios[1].Title = "Renamed After Start"

	got, err := mgr.Get(state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, title, got.Scenario.Title)
}

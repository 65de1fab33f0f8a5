package sessions

import (
	"gocoach/pkg/gamestate"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gameState(startTime float64, role string) *gamestate.MatchState {
	return &gamestate.MatchState{
		GameTime:      startTime + 300,
		GameStartTime: startTime,
		ActivePlayer: &gamestate.Player{
			SummonerName: "Foo#123",
			ChampionName: "Braum",
			TeamId:       gamestate.TeamOrder,
			Role:         role,
		},
	}
}

// Test the position to role normalization.
func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		position string
		expected string
	}{
		{position: "TOP", expected: "top"},
		{position: "JUNGLE", expected: "jungle"},
		{position: "MIDDLE", expected: "mid"},
		{position: "BOTTOM", expected: "adc"},
		{position: "UTILITY", expected: "support"},
		{position: "utility", expected: "support"},
		{position: "NONE", expected: "unknown"},
		{position: "", expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.position, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeRole(tt.position))
		})
	}
}

// Test that the same match reuses the session and a new match doesn't.
func TestGetOrCreateGameSession(t *testing.T) {
	manager := NewManager()
	defer manager.Close()

	first := manager.GetOrCreateGameSession("user-1", "Foo#123", gameState(12.5, "UTILITY"))
	require.NotNil(t, first)
	assert.Equal(t, "game_12.5", first.MatchId)
	assert.Equal(t, "Braum", first.Champion)
	assert.Equal(t, "support", first.Role)
	assert.Equal(t, gamestate.TeamOrder, first.Team)

	second := manager.GetOrCreateGameSession("user-1", "Foo#123", gameState(12.5, "UTILITY"))
	assert.Same(t, first, second)

	// A different game start time is a different match.
	third := manager.GetOrCreateGameSession("user-1", "Foo#123", gameState(99, "UTILITY"))
	assert.NotSame(t, first, third)
}

// Test that entering a game evicts the user knowledge session.
func TestGameSessionEvictsKnowledgeSession(t *testing.T) {
	manager := NewManager()
	defer manager.Close()

	knowledge := manager.GetOrCreateKnowledgeSession("user-1")
	require.NotNil(t, knowledge)
	assert.True(t, knowledge.IsKnowledge())

	manager.GetOrCreateGameSession("user-1", "Foo#123", gameState(12.5, "TOP"))

	assert.Nil(t, manager.Get("user-1", "knowledge"))

	// A fresh knowledge request creates a brand new session.
	recreated := manager.GetOrCreateKnowledgeSession("user-1")
	assert.NotSame(t, knowledge, recreated)
}

// Test the knowledge session reuse per user.
func TestGetOrCreateKnowledgeSession(t *testing.T) {
	manager := NewManager()
	defer manager.Close()

	first := manager.GetOrCreateKnowledgeSession("user-1")
	second := manager.GetOrCreateKnowledgeSession("user-1")
	other := manager.GetOrCreateKnowledgeSession("user-2")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, manager.ActiveCount())
}

// Test that an expired session is dropped on lookup.
func TestExpiredSessionLookup(t *testing.T) {
	manager := NewManager()
	defer manager.Close()

	session := manager.GetOrCreateKnowledgeSession("user-1")
	session.expiresAt = time.Now().Add(-time.Minute)

	assert.Nil(t, manager.Get("user-1", "knowledge"))
	assert.Equal(t, 0, manager.ActiveCount())
}

// Test that the sweep removes only the expired sessions.
func TestSweep(t *testing.T) {
	manager := NewManager()
	defer manager.Close()

	stale := manager.GetOrCreateKnowledgeSession("stale-user")
	stale.expiresAt = time.Now().Add(-time.Minute)
	manager.GetOrCreateKnowledgeSession("fresh-user")

	manager.sweep()

	assert.Len(t, manager.sessions, 1)
	assert.NotNil(t, manager.Get("fresh-user", "knowledge"))
}

// Test that concurrent get or create never duplicates a session.
func TestConcurrentGetOrCreate(t *testing.T) {
	manager := NewManager()
	defer manager.Close()

	results := make([]*Session, 16)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			results[slot] = manager.GetOrCreateGameSession("user-1", "Foo#123", gameState(12.5, "TOP"))
		}(i)
	}
	wg.Wait()

	for _, session := range results {
		assert.Same(t, results[0], session)
	}
	assert.Equal(t, 1, manager.ActiveCount())
}

// Test the message history bookkeeping.
func TestMessageHistory(t *testing.T) {
	history := &MessageHistory{}

	history.AddUserMessage("how do I play this matchup?")
	history.AddAssistantMessage("freeze the wave near your turret")

	messages := history.All()
	require.Len(t, messages, 2)
	assert.Equal(t, Message{Role: "user", Content: "how do I play this matchup?"}, messages[0])
	assert.Equal(t, Message{Role: "assistant", Content: "freeze the wave near your turret"}, messages[1])
	assert.Equal(t, 2, history.Count())

	history.Clear()
	assert.Equal(t, 0, history.Count())
}

// Test the elapsed game time helper.
func TestElapsedGameTime(t *testing.T) {
	session := &Session{GameStartTime: 30}
	assert.Equal(t, 270.0, session.ElapsedGameTime(300))
}

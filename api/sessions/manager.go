package sessions

import (
	"context"
	"fmt"
	"gocoach/pkg/gamestate"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session lifetimes.
const (
	sessionTTL    = 2 * time.Hour
	sweepInterval = 20 * time.Minute
)

// The session type used for out of game knowledge conversations.
const knowledgeType = "knowledge"

// Maps the live client position tags to the internal role names.
var positionToRole = map[string]string{
	"TOP":     "top",
	"JUNGLE":  "jungle",
	"MIDDLE":  "mid",
	"BOTTOM":  "adc",
	"UTILITY": "support",
}

// Session is one per conversation record: either a coaching session bound
// to a match or an out of game knowledge session.
type Session struct {
	Id            string
	Username      string
	MatchId       string
	GameStartTime float64
	Role          string
	Champion      string
	Team          string
	History       *MessageHistory
	createdAt     time.Time
	expiresAt     time.Time
}

// Expired checks if the session exceeded its TTL.
func (s *Session) Expired() bool {
	return !time.Now().Before(s.expiresAt)
}

// IsKnowledge tells if the session is an out of game one.
func (s *Session) IsKnowledge() bool {
	return s.MatchId == knowledgeType
}

// ElapsedGameTime returns how much game time passed since the session start.
func (s *Session) ElapsedGameTime(currentGameTime float64) float64 {
	return currentGameTime - s.GameStartTime
}

type sessionKey struct {
	identifier  string
	sessionType string
}

// Manager keeps the in-memory sessions. Creation, lookup and expiry all run
// under one mutex so two concurrent requests for the same identity can't
// race a duplicate session into the map.
type Manager struct {
	mu       sync.Mutex
	sessions map[sessionKey]*Session

	sweepTicker *time.Ticker
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// NewManager creates a session manager with the background sweep running.
func NewManager() *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		sessions:    make(map[sessionKey]*Session),
		sweepTicker: time.NewTicker(sweepInterval),
		ctx:         ctx,
		cancel:      cancel,
	}
	m.startSweepWorker()

	return m
}

// startSweepWorker starts the background worker for the expired sessions.
func (m *Manager) startSweepWorker() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for {
			select {
			case <-m.sweepTicker.C:
				m.sweep()
			case <-m.ctx.Done():
				return
			}
		}
	}()
}

// sweep drops every expired session.
func (m *Manager) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, session := range m.sessions {
		if session.Expired() {
			delete(m.sessions, key)
		}
	}
}

// Close shuts down the sweep worker.
func (m *Manager) Close() {
	m.cancel()
	m.sweepTicker.Stop()
	m.wg.Wait()
}

// Get returns the session for the given identity, dropping it when expired.
func (m *Manager) Get(identifier string, sessionType string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getLocked(identifier, sessionType)
}

func (m *Manager) getLocked(identifier string, sessionType string) *Session {
	key := sessionKey{identifier: identifier, sessionType: sessionType}
	session, exists := m.sessions[key]
	if !exists {
		return nil
	}

	if session.Expired() {
		delete(m.sessions, key)
		return nil
	}

	return session
}

// GetOrCreateGameSession returns the coaching session for the match on the
// given state, creating it when missing. A new game session evicts any
// knowledge session of the same user, since the user entered a game.
func (m *Manager) GetOrCreateGameSession(userId string, username string, state *gamestate.MatchState) *Session {
	matchId := fmt.Sprintf("game_%v", state.GameStartTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	if session := m.getLocked(username, matchId); session != nil {
		return session
	}

	champion := "unknown"
	role := "unknown"
	team := ""
	if active := state.ActivePlayer; active != nil {
		champion = active.ChampionName
		role = NormalizeRole(active.Role)
		team = active.TeamId
	}

	if userId != "" {
		delete(m.sessions, sessionKey{identifier: userId, sessionType: knowledgeType})
	}

	now := time.Now()
	session := &Session{
		Id:            uuid.NewString(),
		Username:      username,
		MatchId:       matchId,
		GameStartTime: state.GameStartTime,
		Role:          role,
		Champion:      champion,
		Team:          team,
		History:       &MessageHistory{},
		createdAt:     now,
		expiresAt:     now.Add(sessionTTL),
	}
	m.sessions[sessionKey{identifier: username, sessionType: matchId}] = session

	return session
}

// GetOrCreateKnowledgeSession returns the out of game session of a user,
// creating it when missing.
func (m *Manager) GetOrCreateKnowledgeSession(userId string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session := m.getLocked(userId, knowledgeType); session != nil {
		return session
	}

	now := time.Now()
	session := &Session{
		Id:        uuid.NewString(),
		Username:  userId,
		MatchId:   knowledgeType,
		History:   &MessageHistory{},
		createdAt: now,
		expiresAt: now.Add(sessionTTL),
	}
	m.sessions[sessionKey{identifier: userId, sessionType: knowledgeType}] = session

	return session
}

// ActiveCount returns the number of non expired sessions.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, session := range m.sessions {
		if !session.Expired() {
			count++
		}
	}
	return count
}

// NormalizeRole converts the live client position tag to the role names
// used by the playbook content. Unknown positions map to "unknown".
func NormalizeRole(position string) string {
	if role, exists := positionToRole[strings.ToUpper(position)]; exists {
		return role
	}
	return "unknown"
}

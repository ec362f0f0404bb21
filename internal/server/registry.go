package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/eduplay/gameboard/internal/jeopardy"
)

// liveSession pairs a session state machine with its identity. The state
// machine itself is single-actor; mu serializes the concurrent HTTP
// requests that drive it.
type liveSession struct {
	ID       string
	GameID   string
	GameName string

	mu   sync.Mutex
	sess *jeopardy.Session
}

// Registry holds the live operator sessions. Sessions are in-memory only:
// a session is born when its definition loads and dies on exit or process
// restart. Nothing about play progress is persisted.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*liveSession
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*liveSession),
	}
}

func (r *Registry) Create(gameID, gameName string, sess *jeopardy.Session) *liveSession {
	ls := &liveSession{
		ID:       uuid.NewString(),
		GameID:   gameID,
		GameName: gameName,
		sess:     sess,
	}

	r.mu.Lock()
	r.sessions[ls.ID] = ls
	r.mu.Unlock()
	return ls
}

func (r *Registry) Get(id string) (*liveSession, bool) {
	r.mu.RLock()
	ls, ok := r.sessions[id]
	r.mu.RUnlock()
	return ls, ok
}

// Remove unregisters a session. Returns false if it was already gone, so
// a double exit cannot fire teardown work twice.
func (r *Registry) Remove(id string) (*liveSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ls, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	delete(r.sessions, id)
	return ls, true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

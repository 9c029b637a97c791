// In-memory session store. State is lost when the process restarts;
// persisting finished games is left to whoever consumes the API.

package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xtding233/bowling-backend/internal/bowling"
)

// ErrNotFound is returned for unknown session ids.
var ErrNotFound = errors.New("session not found")

// Session is one bowler's game in progress.
type Session struct {
	ID            uuid.UUID    `json:"id"`
	Bowler        string       `json:"bowler"`
	Game          bowling.Game `json:"game"`
	Reconstructed bool         `json:"reconstructed"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Store defines the persistence interface for game sessions.
type Store interface {
	// Create starts a new empty game for bowler.
	Create(ctx context.Context, bowler string) (Session, error)
	Get(ctx context.Context, id uuid.UUID) (Session, error)
	// Save replaces a stored session. The session must exist.
	Save(ctx context.Context, s Session) (Session, error)
	// Update applies fn to the stored session atomically. An error from fn
	// leaves the session unchanged.
	Update(ctx context.Context, id uuid.UUID, fn func(*Session) error) (Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns every session, oldest first.
	List(ctx context.Context) ([]Session, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex // guards sessions
	sessions map[uuid.UUID]Session
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[uuid.UUID]Session), now: time.Now}
}

func (m *memory) Create(ctx context.Context, bowler string) (Session, error) {
	now := m.now().UTC()
	s := Session{
		ID:        uuid.New(),
		Bowler:    bowler,
		Game:      bowling.NewGame(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return clone(s), nil
}

func (m *memory) Get(ctx context.Context, id uuid.UUID) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return clone(s), nil
}

func (m *memory) Save(ctx context.Context, s Session) (Session, error) {
	return m.Update(ctx, s.ID, func(cur *Session) error {
		created := cur.CreatedAt
		*cur = clone(s)
		cur.CreatedAt = created
		return nil
	})
}

func (m *memory) Update(ctx context.Context, id uuid.UUID, fn func(*Session) error) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	next := clone(cur)
	if err := fn(&next); err != nil {
		return clone(cur), err
	}
	next.ID = id
	next.UpdatedAt = m.now().UTC()
	m.sessions[id] = next
	return clone(next), nil
}

func (m *memory) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memory) List(ctx context.Context) ([]Session, error) {
	m.mu.RLock()
	out := make([]Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, clone(s))
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// clone keeps callers from mutating stored rolls through shared slices.
func clone(s Session) Session {
	s.Game = s.Game.Clone()
	return s
}

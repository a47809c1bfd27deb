package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/usecase"
)

// SessionGauge tracks the number of live sessions.
type SessionGauge interface {
	Set(float64)
}

type sessionEntry struct {
	session  *usecase.Session
	lastSeen time.Time
}

// SessionManager implements usecase.SessionRepository. Each session gets
// its own stores; sessions idle for too long are evicted by the janitor.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	now      func() time.Time
	gauge    SessionGauge
}

// NewSessionManager creates an empty SessionManager. gauge may be nil.
func NewSessionManager(gauge SessionGauge) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*sessionEntry),
		now:      time.Now,
		gauge:    gauge,
	}
}

// Create registers a new empty session under id.
func (m *SessionManager) Create(ctx context.Context, id string) (*usecase.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; exists {
		return nil, fmt.Errorf("session %s already exists", id)
	}

	now := m.now().UTC()
	session := &usecase.Session{
		ID:        id,
		Groups:    NewGroupStore(),
		Personal:  NewPersonalStore(),
		CreatedAt: now,
	}
	m.sessions[id] = &sessionEntry{session: session, lastSeen: now}
	m.report()

	return session, nil
}

// Get returns a live session and refreshes its idle timer.
func (m *SessionManager) Get(ctx context.Context, id string) (*usecase.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	entry.lastSeen = m.now().UTC()

	return entry.session, nil
}

// Delete discards a session.
func (m *SessionManager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(m.sessions, id)
	m.report()

	return nil
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

// EvictIdle discards sessions not used for longer than idle and returns
// how many were removed.
func (m *SessionManager) EvictIdle(idle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().UTC().Add(-idle)
	evicted := 0
	for id, entry := range m.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		m.report()
	}

	return evicted
}

// RunJanitor evicts idle sessions every interval until ctx is done.
// It returns nil on cancellation.
func (m *SessionManager) RunJanitor(ctx context.Context, interval, idle time.Duration) error {
	if interval <= 0 || idle <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.EvictIdle(idle); n > 0 {
				log.Info().Int("evicted", n).Int("remaining", m.Len()).Msg("idle sessions evicted")
			}
		}
	}
}

func (m *SessionManager) report() {
	if m.gauge != nil {
		m.gauge.Set(float64(len(m.sessions)))
	}
}

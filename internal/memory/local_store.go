package memory

import (
	"context"
	"sync"
	"time"
)

// LocalStore keeps sessions in process memory. Entries idle for longer than
// the timeout are dropped on read and by Sweep.
type LocalStore struct {
	mu       sync.Mutex
	sessions map[string]localEntry
	ttl      time.Duration
	now      func() time.Time
}

type localEntry struct {
	session SessionData
	touched time.Time
}

func NewLocalStore(ttl time.Duration) *LocalStore {
	return &LocalStore{
		sessions: make(map[string]localEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *LocalStore) LoadSession(_ context.Context, sessionID string) (*SessionData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.expired(entry, s.now()) {
		delete(s.sessions, sessionID)
		return nil, ErrSessionNotFound
	}

	session := entry.session
	session.State.Answers = append(session.State.Answers[:0:0], entry.session.State.Answers...)
	return &session, nil
}

func (s *LocalStore) SaveSession(_ context.Context, session *SessionData) error {
	stored := *session
	stored.State.Answers = append(session.State.Answers[:0:0], session.State.Answers...)

	s.mu.Lock()
	s.sessions[session.SessionID] = localEntry{session: stored, touched: s.now()}
	s.mu.Unlock()
	return nil
}

func (s *LocalStore) ClearSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

func (s *LocalStore) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	_, err := s.LoadSession(ctx, sessionID)
	if err == ErrSessionNotFound {
		return false, nil
	}
	return err == nil, err
}

// Len returns the number of stored sessions, idle ones included until swept.
func (s *LocalStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts idle sessions and returns how many were removed.
func (s *LocalStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.sessions {
		if s.expired(entry, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Start sweeps every interval until ctx is done.
func (s *LocalStore) Start(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed := s.Sweep()
				if onSweep != nil {
					onSweep(removed)
				}
			}
		}
	}()
}

func (s *LocalStore) Close() error {
	s.mu.Lock()
	s.sessions = make(map[string]localEntry)
	s.mu.Unlock()
	return nil
}

func (s *LocalStore) expired(entry localEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(entry.touched) > s.ttl
}

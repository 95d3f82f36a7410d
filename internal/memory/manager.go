package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Manager scopes dialogue state to a conversation. A session is stored only
// while its interview is running or has just finished: it is created by the
// first Commit of an in-progress state and removed by the first Commit of an
// idle one.
type Manager struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewManager(store Store, logger *zap.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger.With(zap.String("component", "sessions")),
		now:    time.Now,
	}
}

// Session returns the stored session, or a fresh idle one that is not yet
// persisted.
func (m *Manager) Session(ctx context.Context, sessionID, userID string) (*SessionData, error) {
	session, err := m.store.LoadSession(ctx, sessionID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	now := m.now()
	return &SessionData{
		SessionID: sessionID,
		UserID:    userID,
		Metadata: Metadata{
			StartedAt:    now,
			LastActivity: now,
		},
	}, nil
}

// Commit records a finished turn.
func (m *Manager) Commit(ctx context.Context, session *SessionData) error {
	if !session.State.InProgress() {
		if err := m.store.ClearSession(ctx, session.SessionID); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		m.logger.Debug("session closed", zap.String("session_id", session.SessionID))
		return nil
	}

	session.Metadata.LastActivity = m.now()
	session.Metadata.TurnCount++

	if err := m.store.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	m.logger.Debug("session saved",
		zap.String("session_id", session.SessionID),
		zap.Stringer("stage", session.State.Stage),
		zap.Int("turns", session.Metadata.TurnCount),
	)
	return nil
}

// ClearSession drops a conversation's state
func (m *Manager) ClearSession(ctx context.Context, sessionID string) error {
	return m.store.ClearSession(ctx, sessionID)
}

// SessionExists reports whether an interview is running for the session
func (m *Manager) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	return m.store.SessionExists(ctx, sessionID)
}

// ActiveSessions returns the number of stored sessions when the store can
// count them cheaply.
func (m *Manager) ActiveSessions() (int, bool) {
	if counter, ok := m.store.(interface{ Len() int }); ok {
		return counter.Len(), true
	}
	return 0, false
}

// Close closes the underlying store
func (m *Manager) Close() error {
	return m.store.Close()
}

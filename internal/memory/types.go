package memory

import (
	"context"
	"errors"
	"time"

	"github.com/avvvet/hangoutbot/internal/dialogue"
)

// ErrSessionNotFound is returned when a session has no stored state.
var ErrSessionNotFound = errors.New("session not found")

// SessionData is everything kept for one conversation between turns.
type SessionData struct {
	SessionID string         `json:"session_id"`
	UserID    string         `json:"user_id"`
	State     dialogue.State `json:"state"`
	Metadata  Metadata       `json:"metadata"`
}

// Metadata contains session bookkeeping
type Metadata struct {
	StartedAt    time.Time `json:"started_at"`
	LastActivity time.Time `json:"last_activity"`
	TurnCount    int       `json:"turn_count"`
}

// Store persists dialogue sessions. Sessions that see no activity for the
// store's idle timeout are evicted.
type Store interface {
	// LoadSession returns ErrSessionNotFound for unknown or expired sessions
	LoadSession(ctx context.Context, sessionID string) (*SessionData, error)

	// SaveSession writes the session and restarts its idle timer
	SaveSession(ctx context.Context, session *SessionData) error

	// ClearSession removes a session; clearing a missing session is not an error
	ClearSession(ctx context.Context, sessionID string) error

	SessionExists(ctx context.Context, sessionID string) (bool, error)

	Close() error
}

package cart

import (
	"context"
	"errors"
)

// ErrSessionNotFound is returned when a session ID has no stored state.
var ErrSessionNotFound = errors.New("session not found")

// Store persists sessions between requests. Sessions are single-writer by
// contract, so implementations only need last-write-wins semantics.
type Store interface {
	Create(ctx context.Context) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Ping(ctx context.Context) error
}

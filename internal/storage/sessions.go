package storage

import (
	"context"
	"errors"
	"time"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/game"
)

var (
	ErrSessionNotFound = errors.New("battle session not found")
	ErrSessionExists   = errors.New("battle session already exists")
)

// SessionStore holds the active battle of every client. Update runs fn
// exclusively for a given session, so each battle has a single writer.
type SessionStore interface {
	Create(ctx context.Context, s *game.Session) error
	Get(ctx context.Context, id string) (*game.Session, error)
	// Update loads the session, applies fn and saves the result. When fn
	// returns an error nothing is written and the error is returned.
	Update(ctx context.Context, id string, fn func(s *game.Session) error) (*game.Session, error)
	Delete(ctx context.Context, id string) error
	// SweepIdle removes sessions last updated before cutoff and returns them.
	SweepIdle(ctx context.Context, cutoff time.Time) ([]game.Session, error)
	Close() error
}

func cloneSession(s *game.Session) *game.Session {
	out := *s
	out.Battle = s.Battle.Clone()
	return &out
}

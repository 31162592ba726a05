package auth

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrSessionExpired = errors.New("session expired")
)

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*StaticChecker)(nil)

// Session is a dashboard login, bound to the token the backend issued for it.
type Session struct {
	Token        string
	BackendToken string
	CreatedAt    time.Time
}

type Checker interface {
	Session(ctx context.Context, token string) (*Session, error)
}

package auth

import (
	"context"
	"sync"
)

// StaticChecker keeps sessions in memory. Used by tests and local runs without redis.
type StaticChecker struct {
	mutex    sync.RWMutex
	sessions map[string]*Session
}

func NewStaticChecker(sessions ...*Session) *StaticChecker {
	c := &StaticChecker{
		sessions: map[string]*Session{},
	}
	for _, s := range sessions {
		c.sessions[s.Token] = s
	}
	return c
}

func (c *StaticChecker) Add(s *Session) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.sessions[s.Token] = s
}

func (c *StaticChecker) Session(_ context.Context, token string) (*Session, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	s, ok := c.sessions[token]
	if !ok {
		return nil, ErrNoSession
	}
	return s, nil
}

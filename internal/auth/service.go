package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/emtdash/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "emtdash-session||"
	tokensSetKey     = "emtdash-sessions"

	fieldCreatedAt    = "created_at"
	fieldBackendToken = "backend_token"

	tokenLength = 35
)

type Service struct {
	redisClient *redis.Client
	ttl         time.Duration
	// set after each ScanAndClean, optional
	activeSessions prometheus.Gauge
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(
	ttl time.Duration,
	redisClient *redis.Client,
	activeSessions prometheus.Gauge,
) *Service {
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		activeSessions: activeSessions,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

// Login opens a dashboard session for an already authenticated backend token
// and returns the dashboard token the browser should send from now on.
func (as *Service) Login(ctx context.Context, backendToken string, createdAt time.Time) (string, error) {
	if backendToken == "" {
		return "", fmt.Errorf("login: empty backend token")
	}

	token, err := as.RandStringFunc(tokenLength)
	if err != nil {
		return "", err
	}

	key := sessionKey(token)
	if err := as.redisClient.HSet(ctx, key,
		fieldCreatedAt, createdAt.Unix(),
		fieldBackendToken, backendToken,
	).Err(); err != nil {
		return "", err
	}

	// redis drops the hash by itself, ScanAndClean then only prunes the token set
	if err := as.redisClient.Expire(ctx, key, as.ttl).Err(); err != nil {
		return "", err
	}

	// add token to list of sessions
	if err := as.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Logout removes the session and returns the backend token it carried,
// so the caller can log out of the backend too. ok is false if there was no session.
func (as *Service) Logout(ctx context.Context, token string) (backendToken string, ok bool, err error) {
	session, err := readSession(ctx, as.redisClient, token)
	if err == ErrNoSession {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	if err := as.Drop(ctx, token); err != nil {
		return "", false, err
	}

	return session.BackendToken, true, nil
}

// Drop removes a session without looking at it, e.g. once the backend stopped
// accepting its token.
func (as *Service) Drop(ctx context.Context, token string) error {
	if err := as.redisClient.Del(ctx, sessionKey(token)).Err(); err != nil {
		return err
	}

	// remove token from the list of sessions
	return as.redisClient.SRem(ctx, tokensSetKey, token).Err()
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (as *Service) ScanAndClean(ctx context.Context) {
	cmd := as.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	sessionTokens := cmd.Val()
	if len(sessionTokens) == 0 {
		log.Debugln("=> auth service, scan and clean abort, no sessions")
		as.setActive(0)
		return
	}

	log.Infof("=> auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		session, err := readSession(ctx, as.redisClient, token)
		if err == ErrNoSession {
			// hash already expired in redis
			toRemove = append(toRemove, token)
			continue
		}
		if err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", pkg.TokenHint(token), err)
			continue
		}

		if time.Since(session.CreatedAt) > as.ttl {
			log.Infof("=>\twill clean the session with token: %s", pkg.TokenHint(token))
			toRemove = append(toRemove, token)
		}
	}

	removed := 0
	for _, token := range toRemove {
		if err := as.Drop(ctx, token); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", pkg.TokenHint(token), err)
			continue
		}
		removed++
	}

	as.setActive(len(sessionTokens) - removed)
}

func (as *Service) setActive(n int) {
	if as.activeSessions != nil {
		as.activeSessions.Set(float64(n))
	}
}

func readSession(ctx context.Context, rdb *redis.Client, token string) (*Session, error) {
	cmd := rdb.HGetAll(ctx, sessionKey(token))
	if err := cmd.Err(); err != nil {
		return nil, err
	}

	fields := cmd.Val()
	if len(fields) == 0 {
		return nil, ErrNoSession
	}

	createdAtUnix, err := strconv.ParseInt(fields[fieldCreatedAt], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("session %s created at: %w", pkg.TokenHint(token), err)
	}
	backendToken := fields[fieldBackendToken]
	if backendToken == "" {
		return nil, fmt.Errorf("session %s: no backend token", pkg.TokenHint(token))
	}

	return &Session{
		Token:        token,
		BackendToken: backendToken,
		CreatedAt:    time.Unix(createdAtUnix, 0),
	}, nil
}

// Package session tracks operator sessions in Redis. An access token is only
// honoured while the session it names is alive.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Alijeyrad/stomatology_backend/pkg/constants"
)

var ErrSessionNotFound = errors.New("session not found")

func redisKey(sessionID uuid.UUID) string {
	return constants.RedisSessionPrefix + sessionID.String()
}

type Service interface {
	// Create opens a session for userID that lives for ttl.
	Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (uuid.UUID, error)
	Active(ctx context.Context, sessionID uuid.UUID) (bool, error)
	Revoke(ctx context.Context, sessionID uuid.UUID) error
}

type redisService struct {
	rdb *goredis.Client
}

func New(rdb *goredis.Client) Service {
	return &redisService{rdb: rdb}
}

func (s *redisService) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (uuid.UUID, error) {
	sessionID := uuid.Must(uuid.NewV7())
	if err := s.rdb.Set(ctx, redisKey(sessionID), userID.String(), ttl).Err(); err != nil {
		return uuid.Nil, fmt.Errorf("store session: %w", err)
	}
	return sessionID, nil
}

func (s *redisService) Active(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	n, err := s.rdb.Exists(ctx, redisKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists session: %w", err)
	}
	return n > 0, nil
}

func (s *redisService) Revoke(ctx context.Context, sessionID uuid.UUID) error {
	deleted, err := s.rdb.Del(ctx, redisKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if deleted == 0 {
		slog.DebugContext(ctx, "session already expired", "session_id", sessionID)
		return ErrSessionNotFound
	}
	return nil
}

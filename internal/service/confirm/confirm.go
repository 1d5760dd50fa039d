// Package confirm issues the one-time tokens that guard record deletion.
//
// A token is bound to a single record and is consumed by the first attempt
// to use it, successful or not.
package confirm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Alijeyrad/stomatology_backend/internal/entity"
	"github.com/Alijeyrad/stomatology_backend/pkg/constants"
)

const DefaultTTL = 5 * time.Minute

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	// Issue returns a token that confirms deleting the record.
	Issue(ctx context.Context, kind entity.Kind, id int) (string, error)
	// Consume invalidates token and fails with ErrInvalidToken unless it was
	// issued for the same record and has not expired.
	Consume(ctx context.Context, kind entity.Kind, id int, token string) error
}

func subject(kind entity.Kind, id int) string {
	return fmt.Sprintf("%s:%d", kind, id)
}

// ---------------------------------------------------------------------------
// Redis implementation
// ---------------------------------------------------------------------------

type redisService struct {
	rdb *goredis.Client
	ttl time.Duration
}

func NewRedis(rdb *goredis.Client, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisService{rdb: rdb, ttl: ttl}
}

func redisKey(token string) string {
	return constants.RedisConfirmPrefix + token
}

func (s *redisService) Issue(ctx context.Context, kind entity.Kind, id int) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, redisKey(token), subject(kind, id), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store confirmation token: %w", err)
	}
	return token, nil
}

func (s *redisService) Consume(ctx context.Context, kind entity.Kind, id int, token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	got, err := s.rdb.GetDel(ctx, redisKey(token)).Result()
	if errors.Is(err, goredis.Nil) {
		return ErrInvalidToken
	}
	if err != nil {
		return fmt.Errorf("consume confirmation token: %w", err)
	}
	if got != subject(kind, id) {
		return ErrInvalidToken
	}
	return nil
}

// ---------------------------------------------------------------------------
// In-memory implementation
// ---------------------------------------------------------------------------

type pending struct {
	subject string
	expires time.Time
}

type memoryService struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	tokens map[string]pending
}

// NewMemory keeps tokens in process; used when Redis is not configured.
func NewMemory(ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &memoryService{ttl: ttl, now: time.Now, tokens: map[string]pending{}}
}

func (s *memoryService) Issue(_ context.Context, kind entity.Kind, id int) (string, error) {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for t, p := range s.tokens {
		if now.After(p.expires) {
			delete(s.tokens, t)
		}
	}
	s.tokens[token] = pending{subject: subject(kind, id), expires: now.Add(s.ttl)}
	return token, nil
}

func (s *memoryService) Consume(_ context.Context, kind entity.Kind, id int, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.tokens[token]
	if !ok {
		return ErrInvalidToken
	}
	delete(s.tokens, token)

	if s.now().After(p.expires) || p.subject != subject(kind, id) {
		return ErrInvalidToken
	}
	return nil
}

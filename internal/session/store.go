// Package session implements the server-side session store. A session is an
// opaque token mapped to a user identifier; the token is the only thing the
// client ever holds, and the user ID is the only recognized payload.
package session

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the cookie carrying the session token.
const CookieName = "warbler_session"

const keyPrefix = "session:%s"

type memEntry struct {
	userID    uint
	expiresAt time.Time
}

// Store maps session tokens to user IDs. Tokens live in Redis when a client is
// available; otherwise an in-process map keeps development setups working.
type Store struct {
	rdb *redis.Client
	ttl time.Duration

	mu  sync.RWMutex
	mem map[string]memEntry
}

// NewStore creates a session store. rdb may be nil.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{
		rdb: rdb,
		ttl: ttl,
		mem: make(map[string]memEntry),
	}
}

func key(token string) string {
	return fmt.Sprintf(keyPrefix, token)
}

// Create starts a session for userID and returns the new opaque token.
func (s *Store) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, key(token), strconv.FormatUint(uint64(userID), 10), s.ttl).Err(); err != nil {
			return "", fmt.Errorf("store session: %w", err)
		}
		return token, nil
	}

	s.mu.Lock()
	s.mem[token] = memEntry{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

// Resolve returns the user ID for a token. The second return value is false
// when the token is unknown or expired.
func (s *Store) Resolve(ctx context.Context, token string) (uint, bool, error) {
	if token == "" {
		return 0, false, nil
	}

	if s.rdb != nil {
		val, err := s.rdb.Get(ctx, key(token)).Result()
		if err == redis.Nil {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, fmt.Errorf("resolve session: %w", err)
		}
		userID, err := strconv.ParseUint(val, 10, 32)
		if err != nil {
			return 0, false, fmt.Errorf("corrupt session payload: %w", err)
		}
		return uint(userID), true, nil
	}

	s.mu.RLock()
	entry, ok := s.mem[token]
	s.mu.RUnlock()
	if !ok {
		return 0, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.mem, token)
		s.mu.Unlock()
		return 0, false, nil
	}
	return entry.userID, true, nil
}

// Destroy ends the session for a token. Destroying an unknown token is a no-op.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, key(token)).Err(); err != nil {
			return fmt.Errorf("destroy session: %w", err)
		}
		return nil
	}

	s.mu.Lock()
	delete(s.mem, token)
	s.mu.Unlock()
	return nil
}

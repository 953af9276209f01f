package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"stayhive/models"

	"github.com/go-redis/redis/v8"
)

// SessionStore persists booking drafts for the lifetime of a checkout.
type SessionStore interface {
	Save(ctx context.Context, draft *models.BookingDraft) error
	Load(ctx context.Context, sessionID string) (*models.BookingDraft, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps drafts as JSON blobs with a TTL, so an abandoned
// checkout expires on its own.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func sessionKey(id string) string {
	return "booking:session:" + id
}

func (s *RedisSessionStore) Save(ctx context.Context, draft *models.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionKey(draft.SessionID), data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (*models.BookingDraft, error) {
	data, err := s.Client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking session: %w", err)
	}
	var draft models.BookingDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &draft, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.Client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete booking session: %w", err)
	}
	return nil
}

// MemorySessionStore is an in-process store used by tests.
type MemorySessionStore struct {
	mu     sync.Mutex
	drafts map[string][]byte
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{drafts: make(map[string][]byte)}
}

func (s *MemorySessionStore) Save(_ context.Context, draft *models.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.SessionID] = data
	return nil
}

func (s *MemorySessionStore) Load(_ context.Context, sessionID string) (*models.BookingDraft, error) {
	s.mu.Lock()
	data, ok := s.drafts[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	var draft models.BookingDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
	return nil
}

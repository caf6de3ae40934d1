package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/povarna/generative-ai-agents/legal-advisor/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultMaxEntries = 20
	DefaultTTL        = 24 * time.Hour

	keyPrefix = "legal-advisor:history:"
)

var ErrEmptySessionID = errors.New("session id is empty")

// Store keeps the assessment history of each session in a Redis list,
// newest entry first.
type Store struct {
	client     redis.Cmdable
	maxEntries int
	ttl        time.Duration
}

func NewStore(client redis.Cmdable, maxEntries int, ttl time.Duration) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		client:     client,
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

func (s *Store) Append(ctx context.Context, sessionID string, entry models.HistoryEntry) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	key := sessionKey(sessionID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, int64(s.maxEntries-1))
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append history for session %s: %w", sessionID, err)
	}
	return nil
}

// List returns the session history, newest first. Undecodable entries are
// skipped.
func (s *Store) List(ctx context.Context, sessionID string) ([]models.HistoryEntry, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	raw, err := s.client.LRange(ctx, sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history for session %s: %w", sessionID, err)
	}

	return decodeEntries(raw), nil
}

func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear history for session %s: %w", sessionID, err)
	}
	return nil
}

func decodeEntries(raw []string) []models.HistoryEntry {
	entries := make([]models.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry models.HistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

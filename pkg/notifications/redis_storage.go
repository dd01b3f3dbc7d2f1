package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultRedisKeyPrefix = "qrshare:notifications:"
	DefaultRedisTTL       = 24 * time.Hour
)

var ErrRedisStorage = errors.New("redis notification storage failed")

// RedisStorage keeps each session's notifications in a capped Redis list,
// newest at the head. The list expires after ttl without writes.
type RedisStorage struct {
	client        redis.UniversalClient
	prefix        string
	maxPerSession int
	ttl           time.Duration
}

// RedisStorageOption configures a RedisStorage.
type RedisStorageOption func(*RedisStorage)

// WithRedisKeyPrefix sets the key prefix.
func WithRedisKeyPrefix(prefix string) RedisStorageOption {
	return func(s *RedisStorage) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithRedisMaxPerSession sets the per-session history cap.
func WithRedisMaxPerSession(n int) RedisStorageOption {
	return func(s *RedisStorage) {
		if n > 0 {
			s.maxPerSession = n
		}
	}
}

// WithRedisTTL sets how long an idle session's history is retained.
func WithRedisTTL(ttl time.Duration) RedisStorageOption {
	return func(s *RedisStorage) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewRedisStorage creates a notification storage backed by client.
func NewRedisStorage(client redis.UniversalClient, opts ...RedisStorageOption) *RedisStorage {
	s := &RedisStorage{
		client:        client,
		prefix:        DefaultRedisKeyPrefix,
		maxPerSession: DefaultMaxPerSession,
		ttl:           DefaultRedisTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStorage) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *RedisStorage) Create(ctx context.Context, notif Notification) error {
	if err := validate(notif); err != nil {
		return err
	}

	data, err := json.Marshal(notif)
	if err != nil {
		return errors.Join(ErrRedisStorage, err)
	}

	key := s.key(notif.SessionID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, int64(s.maxPerSession-1))
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return errors.Join(ErrRedisStorage, err)
	}
	return nil
}

func (s *RedisStorage) List(ctx context.Context, sessionID string, opts ListOptions) ([]Notification, error) {
	raw, err := s.client.LRange(ctx, s.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, errors.Join(ErrRedisStorage, err)
	}

	result := make([]Notification, 0, len(raw))
	for i, item := range raw {
		var n Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			return nil, errors.Join(ErrRedisStorage, fmt.Errorf("decode entry %d: %w", i, err))
		}
		if !opts.keep(n) {
			continue
		}
		result = append(result, n)
		if opts.Limit > 0 && len(result) == opts.Limit {
			break
		}
	}
	return result, nil
}

func (s *RedisStorage) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return errors.Join(ErrRedisStorage, err)
	}
	return nil
}

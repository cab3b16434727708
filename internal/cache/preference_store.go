package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Preference keys owned by exactly one page feature each.
const (
	PrefAccent      = "accent"
	PrefDisplayName = "display_name"
	PrefDemoLink    = "demo_link"
)

// PreferenceStore keeps small scalar learner preferences: accent choice,
// saved display name, a demo link. Reads and writes are defensive: when
// the store is unreachable, reads fall back to the default and writes are
// skipped, never surfaced as failures.
type PreferenceStore interface {
	Get(ctx context.Context, learnerID, key, defaultValue string) string
	Set(ctx context.Context, learnerID, key, value string)
	All(ctx context.Context, learnerID string) map[string]string
}

type redisPreferenceStore struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

func NewRedisPreferenceStore(client *redis.Client, logger *slog.Logger) PreferenceStore {
	return &redisPreferenceStore{
		client: client,
		logger: logger,
		ttl:    0, // preferences do not expire
	}
}

func prefKey(learnerID, key string) string {
	return fmt.Sprintf("pref:%s:%s", learnerID, key)
}

func (s *redisPreferenceStore) Get(ctx context.Context, learnerID, key, defaultValue string) string {
	value, err := s.client.Get(ctx, prefKey(learnerID, key)).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("preference read failed, using default",
				"learner_id", learnerID, "key", key, "error", err)
		}
		return defaultValue
	}
	if value == "" {
		return defaultValue
	}
	return value
}

func (s *redisPreferenceStore) Set(ctx context.Context, learnerID, key, value string) {
	if err := s.client.Set(ctx, prefKey(learnerID, key), value, s.ttl).Err(); err != nil {
		// Degrade to "don't persist".
		s.logger.Debug("preference write failed, skipping persist",
			"learner_id", learnerID, "key", key, "error", err)
	}
}

func (s *redisPreferenceStore) All(ctx context.Context, learnerID string) map[string]string {
	out := make(map[string]string)
	for _, key := range []string{PrefAccent, PrefDisplayName, PrefDemoLink} {
		if v := s.Get(ctx, learnerID, key, ""); v != "" {
			out[key] = v
		}
	}
	return out
}

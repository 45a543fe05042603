package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// PrefsStore keeps opaque user preferences in Redis.
type PrefsStore struct {
	client *redis.Client
}

func NewPrefsStore(client *redis.Client) *PrefsStore {
	return &PrefsStore{client: client}
}

func (s *PrefsStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *PrefsStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

func (s *PrefsStore) key(key string) string {
	return "advisor:prefs:" + key
}

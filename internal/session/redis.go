package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sornss/location/internal/location"
)

// RedisStore keeps visitor sessions in redis. TTL is the session lifetime:
// expiry of the key is the session's own eviction, not the resolver's.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(addr string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (s *RedisStore) Session(visitor string) Session {
	return &redisSession{
		client: s.client,
		prefix: "session:" + visitor + ":",
		ttl:    s.ttl,
	}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

type redisSession struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func (s *redisSession) Has(key string) (bool, error) {
	loc, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return loc != nil, nil
}

func (s *redisSession) Get(key string) (*location.Location, error) {
	b, err := s.client.Get(context.Background(), s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't get value from redis: %w", err)
	}
	loc := new(location.Location)
	if err = json.Unmarshal(b, loc); err != nil {
		return nil, fmt.Errorf("can't unmarshal value: %w", err)
	}
	return loc, nil
}

func (s *redisSession) Set(key string, loc *location.Location) error {
	b, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("can't marshal value: %w", err)
	}
	err = s.client.Set(context.Background(), s.prefix+key, b, s.ttl).Err()
	if err != nil {
		return fmt.Errorf("can't save value to redis: %w", err)
	}
	return nil
}

func (s *redisSession) Forget(key string) error {
	err := s.client.Del(context.Background(), s.prefix+key).Err()
	if err != nil {
		return fmt.Errorf("can't delete value from redis: %w", err)
	}
	return nil
}

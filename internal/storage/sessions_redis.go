package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/constants"
	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/game"
)

const maxUpdateRetries = 8

// RedisConfig describes the Redis connection used for sessions.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore connects to Redis and keeps each session under its
// own key, expiring after ttl without updates.
func NewRedisSessionStore(ctx context.Context, cfg RedisConfig, ttl time.Duration) (SessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return newRedisSessionStore(client, ttl), nil
}

func newRedisSessionStore(client *redis.Client, ttl time.Duration) *redisSessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string { return constants.RedisSessionKeyPrefix + id }

func (r *redisSessionStore) Create(ctx context.Context, s *game.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	ok, err := r.client.SetNX(ctx, sessionKey(s.ID), data, r.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionExists
	}
	return nil
}

func (r *redisSessionStore) Get(ctx context.Context, id string) (*game.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var s game.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &s, nil
}

// Update uses WATCH/MULTI so concurrent writers to one session retry
// instead of overwriting each other.
func (r *redisSessionStore) Update(ctx context.Context, id string, fn func(s *game.Session) error) (*game.Session, error) {
	key := sessionKey(id)
	var out game.Session
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		var s game.Session
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode session %s: %w", id, err)
		}
		if err := fn(&s); err != nil {
			return err
		}
		next, err := json.Marshal(&s)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, r.ttl)
			return nil
		})
		if err == nil {
			out = s
		}
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return &out, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("update session %s: too much contention", id)
}

func (r *redisSessionStore) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// SweepIdle is a no-op: Redis expires idle sessions through their TTL.
func (r *redisSessionStore) SweepIdle(context.Context, time.Time) ([]game.Session, error) {
	return nil, nil
}

func (r *redisSessionStore) Close() error { return r.client.Close() }

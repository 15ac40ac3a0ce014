package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const pingTimeout = 5 * time.Second

// RedisStore is a Store backed by Redis.
//
// The connection is established on first use (or by Open) exactly once,
// however many goroutines race for it.
type RedisStore struct {
	opts      *redis.Options
	log       *slog.Logger
	newClient func(*redis.Options) *redis.Client

	connect singleflight.Group

	mu     sync.Mutex
	client *redis.Client
	closed bool
}

// NewRedisStore parses a redis:// URL. No connection is made until first use.
func NewRedisStore(url string, log *slog.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &RedisStore{opts: opts, log: log, newClient: redis.NewClient}, nil
}

// Open connects eagerly and pings the server.
func (s *RedisStore) Open(ctx context.Context) error {
	_, err := s.conn(ctx)
	return err
}

func (s *RedisStore) conn(ctx context.Context) (*redis.Client, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	if s.client != nil {
		c := s.client
		s.mu.Unlock()
		return c, nil
	}
	s.mu.Unlock()

	v, err, _ := s.connect.Do("connect", func() (any, error) {
		s.mu.Lock()
		if s.client != nil {
			c := s.client
			s.mu.Unlock()
			return c, nil
		}
		s.mu.Unlock()

		c := s.newClient(s.opts)

		pingCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pingTimeout)
		defer cancel()
		if err := c.Ping(pingCtx).Err(); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("redis ping %s: %w", s.opts.Addr, err)
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			_ = c.Close()
			return nil, ErrClosed
		}
		s.client = c
		s.log.Info("redis connected", "addr", s.opts.Addr, "db", s.opts.DB)
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*redis.Client), nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	c, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	data, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := c.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	c, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := c.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Close releases the connection. Further operations return ErrClosed.
func (s *RedisStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}

// Package kv provides the key-value stores backing the search cache and user records.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/vmunix/reelgo/internal/config"
)

var (
	// ErrNotFound is returned when a key is absent or expired.
	ErrNotFound = errors.New("key not found")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store closed")
)

// Store is a string-keyed byte store with optional expiry.
// A ttl of zero means the value never expires.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GetJSON loads key into dest. It reports false with a nil error on a miss.
func GetJSON(ctx context.Context, s Store, key string, dest any) (bool, error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores v under key as JSON.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data, ttl)
}

// Open creates the store selected by cfg.Driver and verifies it is reachable.
func Open(ctx context.Context, cfg config.StoreConfig, log *slog.Logger) (Store, error) {
	if log == nil {
		log = slog.Default()
	}

	switch cfg.Driver {
	case "redis", "":
		s, err := NewRedisStore(cfg.URL, log)
		if err != nil {
			return nil, err
		}
		if err := s.Open(ctx); err != nil {
			return nil, err
		}
		return s, nil

	case "sqlite":
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create store dir: %w", err)
			}
		}
		return OpenSQLite(ctx, cfg.Path)

	case "memory":
		log.Warn("using in-memory store, data is lost on restart")
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

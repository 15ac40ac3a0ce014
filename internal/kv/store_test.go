package kv

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/reelgo/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type storeFactory struct {
	name string
	open func(t *testing.T) Store
}

func factories() []storeFactory {
	return []storeFactory{
		{"memory", func(t *testing.T) Store {
			return NewMemoryStore()
		}},
		{"sqlite", func(t *testing.T) Store {
			s, err := OpenSQLite(context.Background(), ":memory:")
			require.NoError(t, err)
			return s
		}},
		{"redis", func(t *testing.T) Store {
			mr := miniredis.RunT(t)
			s, err := NewRedisStore("redis://"+mr.Addr(), testLogger())
			require.NoError(t, err)
			return s
		}},
	}
}

func TestStore_GetSetDelete(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			s := f.open(t)
			defer func() { _ = s.Close() }()
			ctx := context.Background()

			_, err := s.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, "user:1", []byte(`{"id":"1"}`), 0))
			got, err := s.Get(ctx, "user:1")
			require.NoError(t, err)
			assert.Equal(t, `{"id":"1"}`, string(got))

			require.NoError(t, s.Set(ctx, "user:1", []byte(`{"id":"2"}`), 0))
			got, err = s.Get(ctx, "user:1")
			require.NoError(t, err)
			assert.Equal(t, `{"id":"2"}`, string(got), "set should overwrite")

			require.NoError(t, s.Delete(ctx, "user:1"))
			_, err = s.Get(ctx, "user:1")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, s.Delete(ctx, "never-set"), "deleting a missing key is not an error")
		})
	}
}

func TestStore_ClosedReturnsErrClosed(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			s := f.open(t)
			require.NoError(t, s.Close())
			require.NoError(t, s.Close(), "close is idempotent")

			_, err := s.Get(context.Background(), "k")
			assert.ErrorIs(t, err, ErrClosed)
			assert.ErrorIs(t, s.Set(context.Background(), "k", []byte("v"), 0), ErrClosed)
		})
	}
}

func TestJSONHelpers(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	type entry struct {
		Movies []string `json:"movies"`
		Total  int      `json:"total"`
	}

	var dest entry
	found, err := GetJSON(ctx, s, "search:batman", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, s, "search:batman", entry{Movies: []string{"tt0372784"}, Total: 1}, time.Hour))

	found, err = GetJSON(ctx, s, "search:batman", &dest)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"tt0372784"}, dest.Movies)
	assert.Equal(t, 1, dest.Total)
}

func TestGetJSON_CorruptValue(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", []byte("{not json"), 0))

	var dest map[string]any
	found, err := GetJSON(ctx, s, "k", &dest)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "cache", []byte("v"), time.Minute))
	require.NoError(t, s.Set(ctx, "forever", []byte("v"), 0))

	now = now.Add(2 * time.Minute)

	_, err := s.Get(ctx, "cache")
	assert.ErrorIs(t, err, ErrNotFound, "should miss after TTL")
	_, err = s.Get(ctx, "forever")
	assert.NoError(t, err, "zero ttl never expires")
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	value := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", value, 0))
	value[0] = 'z'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestSQLiteStore_ExpiryAndPrune(t *testing.T) {
	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "old", []byte("1"), time.Minute))
	require.NoError(t, s.Set(ctx, "fresh", []byte("2"), time.Hour))
	require.NoError(t, s.Set(ctx, "forever", []byte("3"), 0))

	now = now.Add(10 * time.Minute)

	_, err = s.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := s.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.Get(ctx, "fresh")
	assert.NoError(t, err)
	_, err = s.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestRedisStore_TTL(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := NewRedisStore("redis://"+mr.Addr(), testLogger())
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "search:batman", []byte("[]"), 24*time.Hour))
	require.NoError(t, s.Set(ctx, "user:1", []byte("{}"), 0))

	assert.Equal(t, 24*time.Hour, mr.TTL("search:batman"))
	assert.Zero(t, mr.TTL("user:1"), "user keys carry no expiry")

	mr.FastForward(25 * time.Hour)
	_, err = s.Get(ctx, "search:batman")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, "user:1")
	assert.NoError(t, err)
}

func TestRedisStore_ConcurrentFirstUseConnectsOnce(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := NewRedisStore("redis://"+mr.Addr(), testLogger())
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	var dials atomic.Int32
	s.newClient = func(opts *redis.Options) *redis.Client {
		dials.Add(1)
		return redis.NewClient(opts)
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Get(context.Background(), "k")
			assert.ErrorIs(t, err, ErrNotFound)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), dials.Load())
}

func TestRedisStore_OpenFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	s, err := NewRedisStore("redis://"+addr, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.Error(t, s.Open(ctx))
}

func TestNewRedisStore_BadURL(t *testing.T) {
	_, err := NewRedisStore("http://not-redis", testLogger())
	assert.Error(t, err)
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, config.StoreConfig{Driver: "memory"}, testLogger())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, config.StoreConfig{Driver: "sqlite", Path: t.TempDir() + "/data/kv.db"}, testLogger())
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	mr := miniredis.RunT(t)
	s, err = Open(ctx, config.StoreConfig{Driver: "redis", URL: "redis://" + mr.Addr()}, testLogger())
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, config.StoreConfig{Driver: "etcd"}, testLogger())
	assert.Error(t, err)
}

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vmunix/reelgo/internal/auth"
	"github.com/vmunix/reelgo/internal/kv"
	"github.com/vmunix/reelgo/internal/users"
)

func newService(t *testing.T) (*auth.Service, *kv.MemoryStore) {
	t.Helper()
	mem := kv.NewMemoryStore()
	svc := auth.NewService(users.NewStore(mem),
		auth.WithBcryptCost(bcrypt.MinCost),
		auth.WithClock(func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }),
		auth.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return svc, mem
}

func TestRegister_Validation_NoIO(t *testing.T) {
	svc, mem := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ab", "password1")
	assert.ErrorIs(t, err, auth.ErrUsernameTooShort)

	_, err = svc.Register(ctx, "  ab  ", "password1")
	assert.ErrorIs(t, err, auth.ErrUsernameTooShort, "username is trimmed before the length check")

	_, err = svc.Register(ctx, "abc", "12345")
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)

	assert.Equal(t, 0, mem.Len())
}

func TestRegister_ThenVerify(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, " abc ", "password1")
	require.NoError(t, err)
	assert.Equal(t, "abc", u.Username)
	assert.NotEmpty(t, u.ID)
	assert.Empty(t, u.Watchlist)
	assert.NotNil(t, u.Watchlist)
	assert.Zero(t, u.Score)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), u.CreatedAt)
	assert.True(t, strings.HasPrefix(u.PasswordHash, "$2a$"))
	assert.NotContains(t, u.PasswordHash, "password1")

	got := svc.Verify(ctx, "abc", "password1")
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	assert.Nil(t, svc.Verify(ctx, "abc", "wrong"))
	assert.Nil(t, svc.Verify(ctx, "nobody", "password1"))
	assert.Nil(t, svc.Verify(ctx, "", "password1"))
	assert.Nil(t, svc.Verify(ctx, "abc", ""))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "abc", "password1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "abc", "password2")
	assert.ErrorIs(t, err, auth.ErrUsernameTaken)

	// case-sensitive: a distinct account
	other, err := svc.Register(ctx, "ABC", "password2")
	require.NoError(t, err)
	assert.Equal(t, "ABC", other.Username)
}

func TestRegister_UniqueIDs(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	a, err := svc.Register(ctx, "first", "password1")
	require.NoError(t, err)
	b, err := svc.Register(ctx, "second", "password1")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRegister_StoreFailurePropagates(t *testing.T) {
	svc, mem := newService(t)
	require.NoError(t, mem.Close())

	_, err := svc.Register(context.Background(), "abc", "password1")
	assert.ErrorIs(t, err, kv.ErrClosed)
	assert.Nil(t, svc.Verify(context.Background(), "abc", "password1"))
}

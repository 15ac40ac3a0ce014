package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmunix/reelgo/internal/kv"
)

const (
	userKeyPrefix     = "user:"
	usernameKeyPrefix = "username:"
)

// Store provides access to user records.
type Store struct {
	kv kv.Store
}

// NewStore creates a user store backed by s.
func NewStore(s kv.Store) *Store {
	return &Store{kv: s}
}

// Create writes the record and then the username index. The two writes are
// not atomic: a failure between them leaves a record that cannot be found
// by username.
func (s *Store) Create(ctx context.Context, u *User) error {
	if u.ID == "" || u.Username == "" {
		return fmt.Errorf("create user: %w", ErrInvalid)
	}
	if err := kv.SetJSON(ctx, s.kv, userKeyPrefix+u.ID, u, 0); err != nil {
		return fmt.Errorf("create user %s: %w", u.ID, err)
	}
	if err := s.kv.Set(ctx, usernameKeyPrefix+u.Username, []byte(u.ID), 0); err != nil {
		return fmt.Errorf("index username %s: %w", u.Username, err)
	}
	return nil
}

// Update overwrites the whole record.
func (s *Store) Update(ctx context.Context, u *User) error {
	if u.ID == "" {
		return fmt.Errorf("update user: %w", ErrInvalid)
	}
	if err := kv.SetJSON(ctx, s.kv, userKeyPrefix+u.ID, u, 0); err != nil {
		return fmt.Errorf("update user %s: %w", u.ID, err)
	}
	return nil
}

// GetByID retrieves a user by id.
func (s *Store) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	found, err := kv.GetJSON(ctx, s.kv, userKeyPrefix+id, &u)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return &u, nil
}

// GetByUsername resolves the username index and then loads the record.
// Lookup is exact and case-sensitive.
func (s *Store) GetByUsername(ctx context.Context, username string) (*User, error) {
	id, err := s.kv.Get(ctx, usernameKeyPrefix+username)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve username %s: %w", username, err)
	}
	return s.GetByID(ctx, string(id))
}

// Exists reports whether username is taken.
func (s *Store) Exists(ctx context.Context, username string) (bool, error) {
	_, err := s.kv.Get(ctx, usernameKeyPrefix+username)
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check username %s: %w", username, err)
	}
	return true, nil
}

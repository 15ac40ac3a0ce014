// Package auth registers accounts, verifies passwords and issues session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vmunix/reelgo/internal/users"
)

// Credential limits.
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

var (
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrUsernameTaken    = errors.New("username already exists")
)

// UserStore is the subset of users.Store the credential service needs.
type UserStore interface {
	Create(ctx context.Context, u *users.User) error
	GetByUsername(ctx context.Context, username string) (*users.User, error)
	Exists(ctx context.Context, username string) (bool, error)
}

var _ UserStore = (*users.Store)(nil)

// Service registers and verifies accounts.
type Service struct {
	users UserStore
	cost  int
	now   func() time.Time
	log   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithBcryptCost sets the password hashing cost. Zero keeps the default.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost != 0 {
			s.cost = cost
		}
	}
}

// WithClock overrides the time source (for testing).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService creates a credential service.
func NewService(store UserStore, opts ...Option) *Service {
	s := &Service{
		users: store,
		cost:  bcrypt.DefaultCost,
		now:   time.Now,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account. Validation happens before any I/O; store
// failures are returned wrapped.
func (s *Service) Register(ctx context.Context, username, password string) (*users.User, error) {
	username = strings.TrimSpace(username)
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return nil, ErrUsernameTooShort
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	taken, err := s.users.Exists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", username, err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &users.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
		Watchlist:    []string{},
		Score:        0,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("register %s: %w", username, err)
	}
	s.log.Info("user registered", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// Verify returns the user when password matches, and nil otherwise. It
// does not distinguish an unknown username from a wrong password.
func (s *Service) Verify(ctx context.Context, username, password string) *users.User {
	if username == "" || password == "" {
		return nil
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			s.log.Warn("credential lookup failed", "username", username, "error", err)
		}
		return nil
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil
	}
	return u
}

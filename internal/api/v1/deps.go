package v1

import (
	"context"
	"errors"

	"github.com/vmunix/reelgo/internal/auth"
	"github.com/vmunix/reelgo/internal/filter"
	"github.com/vmunix/reelgo/internal/search"
	"github.com/vmunix/reelgo/internal/users"
	"github.com/vmunix/reelgo/internal/watchlist"
)

//go:generate mockgen -destination=mocks/mock_deps.go -package=mocks . Searcher

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// Searcher defines the interface for search functionality.
type Searcher interface {
	Search(ctx context.Context, query string, f filter.Filters) search.Result
	BatchPages(ctx context.Context, query string, endPage int, f filter.Filters) search.Result
}

// Accounts registers and verifies users.
type Accounts interface {
	Register(ctx context.Context, username, password string) (*users.User, error)
	Verify(ctx context.Context, username, password string) *users.User
}

// Watchlists manages per-user watchlists.
type Watchlists interface {
	Toggle(ctx context.Context, userID, titleID string) watchlist.ToggleResult
	Status(ctx context.Context, userID, titleID string) bool
	Movies(ctx context.Context, userID string) watchlist.MoviesResult
}

// UserLookup loads user records.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*users.User, error)
}

var (
	_ Searcher   = (*search.Aggregator)(nil)
	_ Accounts   = (*auth.Service)(nil)
	_ Watchlists = (*watchlist.Service)(nil)
	_ UserLookup = (*users.Store)(nil)
)

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Accounts Accounts
	Tokens   *auth.Tokens
	Users    UserLookup

	// Optional dependencies (nil if not configured)
	Searcher  Searcher
	Watchlist Watchlists
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Accounts == nil {
		return errors.New("accounts service is required")
	}
	if d.Tokens == nil {
		return errors.New("token issuer is required")
	}
	if d.Users == nil {
		return errors.New("user store is required")
	}
	return nil
}

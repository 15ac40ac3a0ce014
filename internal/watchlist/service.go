// Package watchlist toggles titles on a user's watchlist and keeps the user's score.
package watchlist

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/vmunix/reelgo/internal/movie"
	"github.com/vmunix/reelgo/internal/users"
)

// Failure messages.
const (
	MsgNotAuthenticated = "Not authenticated"
	MsgUserNotFound     = "User not found"
	MsgInvalidTitle     = "Invalid title id"
	MsgUpdateFailed     = "Failed to update watchlist"
	MsgLoadFailed       = "Failed to load watchlist"
)

// UserStore is the subset of users.Store the service needs.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*users.User, error)
	Update(ctx context.Context, u *users.User) error
}

// Catalog resolves title ids to records. *search.Aggregator satisfies it.
type Catalog interface {
	Lookup(ctx context.Context, imdbID string) (movie.Record, error)
	Details(ctx context.Context, ids []string) []movie.Record
}

// ToggleResult is the outcome of Toggle.
type ToggleResult struct {
	Success     bool   `json:"success"`
	InWatchlist bool   `json:"isInWatchlist"`
	Score       int    `json:"score"`
	Error       string `json:"error,omitempty"`
}

// MoviesResult is the outcome of Movies.
type MoviesResult struct {
	Success bool           `json:"success"`
	Data    []movie.Record `json:"data"`
	Error   string         `json:"error,omitempty"`
}

// Service manages watchlists. Toggles on the same user are not serialized:
// concurrent toggles race and the last write wins.
type Service struct {
	users   UserStore
	catalog Catalog
	now     func() time.Time
	log     *slog.Logger
}

// NewService creates a watchlist service.
func NewService(store UserStore, catalog Catalog, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{users: store, catalog: catalog, now: time.Now, log: log}
}

// SetClock overrides the time source used for the recency bonus.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Toggle adds titleID to the user's watchlist, or removes it if present,
// and adjusts the score by the points recorded for that entry.
func (s *Service) Toggle(ctx context.Context, userID, titleID string) ToggleResult {
	if userID == "" {
		return ToggleResult{Error: MsgNotAuthenticated}
	}
	titleID = strings.TrimSpace(titleID)
	if titleID == "" {
		return ToggleResult{Error: MsgInvalidTitle}
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			s.log.Warn("load user failed", "user_id", userID, "error", err)
		}
		return ToggleResult{Error: MsgUserNotFound}
	}

	var added bool
	if i := slices.Index(u.Watchlist, titleID); i >= 0 {
		u.Watchlist = slices.Delete(u.Watchlist, i, i+1)
		pts, ok := u.WatchlistPoints[titleID]
		if !ok {
			pts = BasePoints
		}
		delete(u.WatchlistPoints, titleID)
		u.Score = max(0, u.Score-pts)
	} else {
		pts := s.pointsFor(ctx, titleID)
		u.Watchlist = append(u.Watchlist, titleID)
		if u.WatchlistPoints == nil {
			u.WatchlistPoints = make(map[string]int)
		}
		u.WatchlistPoints[titleID] = pts
		u.Score += pts
		added = true
	}

	if err := s.users.Update(ctx, u); err != nil {
		s.log.Error("update watchlist failed", "user_id", userID, "imdb_id", titleID, "error", err)
		return ToggleResult{Error: MsgUpdateFailed}
	}

	s.log.Info("watchlist toggled", "user_id", userID, "imdb_id", titleID, "added", added, "score", u.Score)
	return ToggleResult{Success: true, InWatchlist: added, Score: u.Score}
}

func (s *Service) pointsFor(ctx context.Context, titleID string) int {
	rec, err := s.catalog.Lookup(ctx, titleID)
	if err != nil {
		s.log.Debug("points lookup failed, awarding base", "imdb_id", titleID, "error", err)
		return BasePoints
	}
	return Points(rec, s.now())
}

// Status reports whether titleID is on the user's watchlist. It is false
// for anonymous callers and on any error.
func (s *Service) Status(ctx context.Context, userID, titleID string) bool {
	if userID == "" {
		return false
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false
	}
	return u.InWatchlist(titleID)
}

// Movies resolves the user's watchlist in order. Titles whose lookup fails
// are omitted.
func (s *Service) Movies(ctx context.Context, userID string) MoviesResult {
	if userID == "" {
		return MoviesResult{Error: MsgNotAuthenticated}
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			s.log.Warn("load user failed", "user_id", userID, "error", err)
			return MoviesResult{Error: MsgLoadFailed}
		}
		return MoviesResult{Error: MsgUserNotFound}
	}
	if len(u.Watchlist) == 0 {
		return MoviesResult{Success: true, Data: []movie.Record{}}
	}
	return MoviesResult{Success: true, Data: s.catalog.Details(ctx, u.Watchlist)}
}

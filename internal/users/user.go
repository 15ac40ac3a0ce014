// Package users persists account records and the username index in the key-value store.
package users

import (
	"slices"
	"time"
)

// User is an account record. Watchlist holds titles in insertion order
// without duplicates; WatchlistPoints records the score awarded for each
// entry so removal can subtract the same amount.
type User struct {
	ID              string         `json:"id"`
	Username        string         `json:"username"`
	PasswordHash    string         `json:"passwordHash"`
	CreatedAt       time.Time      `json:"createdAt"`
	Watchlist       []string       `json:"watchlist"`
	Score           int            `json:"score"`
	WatchlistPoints map[string]int `json:"watchlistPoints,omitempty"`
}

// InWatchlist reports whether imdbID is on the watchlist.
func (u *User) InWatchlist(imdbID string) bool {
	return slices.Contains(u.Watchlist, imdbID)
}

// Public is the user record without credentials.
type Public struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	Watchlist []string  `json:"watchlist"`
	Score     int       `json:"score"`
}

// Public strips the password hash and bookkeeping fields.
func (u *User) Public() Public {
	wl := u.Watchlist
	if wl == nil {
		wl = []string{}
	}
	return Public{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		Watchlist: wl,
		Score:     u.Score,
	}
}

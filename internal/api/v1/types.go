package v1

import (
	"time"

	"github.com/vmunix/reelgo/internal/search"
	"github.com/vmunix/reelgo/internal/users"
)

// statusResponse is the response for GET /status.
type statusResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Store     string `json:"store"`
	Search    bool   `json:"search"`
	Watchlist bool   `json:"watchlist"`
}

// searchResponse is the response for GET /search and /search/batch.
type searchResponse struct {
	search.Result
	Hint string `json:"hint,omitempty"`
}

// credentialsRequest is the request body for register and login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the response for POST /auth/login.
type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      users.Public `json:"user"`
}

// watchlistStatusResponse is the response for GET /watchlist/{id}.
type watchlistStatusResponse struct {
	IMDbID      string `json:"imdb_id"`
	InWatchlist bool   `json:"in_watchlist"`
}

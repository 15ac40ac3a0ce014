// Package search aggregates paginated OMDb searches into cached, enriched and filtered results.
//
// A search has two phases. FirstPage answers quickly from page one; BatchPages
// fetches the remaining pages, refreshes the cache and normally runs as a
// detached background task started by Search. Both phases derive the same
// cache key, so the batch write supersedes the first-page write.
package search

import (
	"github.com/vmunix/reelgo/internal/movie"
)

// Failure codes carried by Result.Code.
const (
	CodeInvalidQuery  = "INVALID_QUERY"
	CodeNotConfigured = "NOT_CONFIGURED"
	CodeNoResults     = "NO_RESULTS"
	CodeNoMatches     = "NO_MATCHES"
)

// Failure messages.
const (
	msgEmptyQuery   = "Please enter a movie name"
	msgNoAPIKey     = "API key is not configured. Please check your environment variables."
	msgNoResultsFmt = "No results found for %q. Please try a different movie name."
	msgNoMatches    = "No movies match the selected filters on the first page."
)

// Result is the discriminated outcome of a search operation.
// On failure Success is false, Error holds a human-readable message and
// Code classifies it; Data is empty.
type Result struct {
	Success      bool           `json:"success"`
	Data         []movie.Record `json:"data,omitempty"`
	Error        string         `json:"error,omitempty"`
	Code         string         `json:"code,omitempty"`
	TotalPages   int            `json:"totalPages,omitempty"`
	TotalResults int            `json:"totalResults,omitempty"`
	Cached       bool           `json:"cached,omitempty"`
}

func failure(code, msg string) Result {
	return Result{Success: false, Code: code, Error: msg}
}

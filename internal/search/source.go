package search

import (
	"context"

	"github.com/vmunix/reelgo/internal/omdb"
)

//go:generate mockgen -destination=mocks/mock_source.go -package=mocks . Source

// Source is the upstream movie catalogue. *omdb.Client satisfies it.
type Source interface {
	Configured() bool
	SearchPage(ctx context.Context, query, year string, page int) (*omdb.SearchPage, error)
	Title(ctx context.Context, imdbID string) (*omdb.Title, error)
}

var _ Source = (*omdb.Client)(nil)

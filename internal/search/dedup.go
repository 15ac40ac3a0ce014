package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/vmunix/reelgo/internal/movie"
	"github.com/vmunix/reelgo/internal/omdb"
)

// uniqueBy keeps the first item for each case-folded title.
func uniqueBy[T any](items []T, title func(T) string) []T {
	fold := cases.Fold() // Casers are stateful; one per call.
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		key := fold.String(strings.TrimSpace(title(it)))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}

func uniqueStubs(stubs []omdb.Stub) []omdb.Stub {
	return uniqueBy(stubs, func(s omdb.Stub) string { return s.Title })
}

func uniqueRecords(records []movie.Record) []movie.Record {
	return uniqueBy(records, func(r movie.Record) string { return r.Title })
}

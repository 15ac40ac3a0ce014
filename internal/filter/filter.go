// Package filter implements the genre, score-range and sort stages applied to search results.
//
// A chain is an ordered list of Specs interpreted by Apply. Chain builds the
// fixed genre → score → sort order from request Filters. Every stage returns
// a new slice and never mutates its input.
package filter

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/vmunix/reelgo/internal/movie"
)

// Score bounds. A range equal to [MinScore, MaxScore] filters nothing.
const (
	MinScore = 0.0
	MaxScore = 10.0
)

// AllGenres is the sentinel meaning "no genre filter".
const AllGenres = "all"

// SortKey selects the result order.
type SortKey string

const (
	SortNone       SortKey = "none"
	SortYearAsc    SortKey = "year-asc"
	SortYearDesc   SortKey = "year-desc"
	SortRatingAsc  SortKey = "rating-asc"
	SortRatingDesc SortKey = "rating-desc"
)

// ParseSort maps a string to a SortKey. Empty maps to SortNone.
func ParseSort(s string) (SortKey, bool) {
	switch k := SortKey(strings.TrimSpace(s)); k {
	case "":
		return SortNone, true
	case SortNone, SortYearAsc, SortYearDesc, SortRatingAsc, SortRatingDesc:
		return k, true
	default:
		return SortNone, false
	}
}

// Range is an inclusive rating interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// IsDefault reports whether r spans the whole rating scale.
func (r Range) IsDefault() bool {
	return r.Min == MinScore && r.Max == MaxScore
}

// Filters are the request-scoped search criteria. Year is applied by the
// upstream query and only affects the cache key; the rest run locally.
type Filters struct {
	Year  string  `json:"year,omitempty"`
	Genre string  `json:"genre,omitempty"`
	Score *Range  `json:"score_range,omitempty"`
	Sort  SortKey `json:"sort,omitempty"`
}

// Kind tags a Spec.
type Kind int

const (
	KindGenre Kind = iota + 1
	KindScore
	KindSort
)

// Spec is one stage of a filter chain.
type Spec struct {
	Kind  Kind
	Genre string
	Score Range
	Sort  SortKey
}

// Genre keeps records tagged with genre. Empty or "all" keeps everything.
func Genre(genre string) Spec {
	return Spec{Kind: KindGenre, Genre: genre}
}

// Score keeps records whose rating lies in [min, max].
func Score(min, max float64) Spec {
	return Spec{Kind: KindScore, Score: Range{Min: min, Max: max}}
}

// Sort orders records by key. The sort is stable.
func Sort(key SortKey) Spec {
	return Spec{Kind: KindSort, Sort: key}
}

// Chain returns the stages for f in their fixed order.
func Chain(f Filters) []Spec {
	score := Range{Min: MinScore, Max: MaxScore}
	if f.Score != nil {
		score = *f.Score
	}
	sortKey := f.Sort
	if sortKey == "" {
		sortKey = SortNone
	}
	return []Spec{
		Genre(f.Genre),
		Score(score.Min, score.Max),
		Sort(sortKey),
	}
}

// Apply runs movies through specs left to right.
func Apply(movies []movie.Record, specs ...Spec) []movie.Record {
	out := slices.Clone(movies)
	for _, s := range specs {
		out = s.apply(out)
	}
	if out == nil {
		out = []movie.Record{}
	}
	return out
}

// Apply runs the chain built from f.
func (f Filters) Apply(movies []movie.Record) []movie.Record {
	return Apply(movies, Chain(f)...)
}

func (s Spec) apply(movies []movie.Record) []movie.Record {
	switch s.Kind {
	case KindGenre:
		return byGenre(movies, s.Genre)
	case KindScore:
		return byScore(movies, s.Score)
	case KindSort:
		return sorted(movies, s.Sort)
	default:
		return slices.Clone(movies)
	}
}

func byGenre(movies []movie.Record, genre string) []movie.Record {
	if genre == "" || genre == AllGenres {
		return slices.Clone(movies)
	}
	out := make([]movie.Record, 0, len(movies))
	for _, m := range movies {
		if slices.Contains(m.Genres(), genre) {
			out = append(out, m)
		}
	}
	return out
}

func byScore(movies []movie.Record, r Range) []movie.Record {
	if r.IsDefault() {
		return slices.Clone(movies)
	}
	out := make([]movie.Record, 0, len(movies))
	for _, m := range movies {
		if math.IsNaN(m.Rating) {
			continue
		}
		if m.Rating >= r.Min && m.Rating <= r.Max {
			out = append(out, m)
		}
	}
	return out
}

func sorted(movies []movie.Record, key SortKey) []movie.Record {
	out := slices.Clone(movies)

	var compare func(a, b movie.Record) int
	switch key {
	case SortYearAsc:
		compare = func(a, b movie.Record) int { return cmp.Compare(a.YearNumber(), b.YearNumber()) }
	case SortYearDesc:
		compare = func(a, b movie.Record) int { return cmp.Compare(b.YearNumber(), a.YearNumber()) }
	case SortRatingAsc:
		compare = func(a, b movie.Record) int { return cmp.Compare(a.Rating, b.Rating) }
	case SortRatingDesc:
		compare = func(a, b movie.Record) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return out
	}

	slices.SortStableFunc(out, compare)
	return out
}

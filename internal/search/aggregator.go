package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/reelgo/internal/filter"
	"github.com/vmunix/reelgo/internal/kv"
	"github.com/vmunix/reelgo/internal/movie"
	"github.com/vmunix/reelgo/internal/omdb"
)

// Defaults applied by NewAggregator to zero Config fields.
const (
	DefaultCacheTTL          = 24 * time.Hour
	DefaultDetailConcurrency = 10
	DefaultFirstPageCap      = 5
	DefaultBatchCap          = 20
	DefaultTaskTimeout       = 2 * time.Minute
)

// Config tunes the aggregator.
type Config struct {
	CacheTTL          time.Duration
	DetailConcurrency int
	FirstPageCap      int // page cap for the first-page fast path
	BatchCap          int // page cap for batch mode and cache hits
	TaskTimeout       time.Duration
}

func (c Config) withDefaults() Config {
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.DetailConcurrency <= 0 {
		c.DetailConcurrency = DefaultDetailConcurrency
	}
	if c.FirstPageCap <= 0 {
		c.FirstPageCap = DefaultFirstPageCap
	}
	if c.BatchCap <= 0 {
		c.BatchCap = DefaultBatchCap
	}
	if c.TaskTimeout <= 0 {
		c.TaskTimeout = DefaultTaskTimeout
	}
	return c
}

// Aggregator runs searches against a Source, enriches hits with detail
// lookups and caches the aggregated list.
type Aggregator struct {
	source Source
	cache  *resultCache
	cfg    Config
	tasks  *Tasks
	log    *slog.Logger
}

// NewAggregator creates an aggregator. store holds the result cache.
func NewAggregator(source Source, store kv.Store, cfg Config, log *slog.Logger) *Aggregator {
	if log == nil {
		log = slog.Default()
	}
	cfg = cfg.withDefaults()
	return &Aggregator{
		source: source,
		cache:  &resultCache{store: store, ttl: cfg.CacheTTL, log: log},
		cfg:    cfg,
		tasks:  NewTasks(cfg.TaskTimeout, log.With("component", "search-tasks")),
		log:    log,
	}
}

// Tasks exposes the background task registry so the caller can drain it
// on shutdown.
func (a *Aggregator) Tasks() *Tasks {
	return a.tasks
}

// precheck validates the query and credential before any I/O.
func (a *Aggregator) precheck(query string) (Result, bool) {
	if strings.TrimSpace(query) == "" {
		return failure(CodeInvalidQuery, msgEmptyQuery), false
	}
	if !a.source.Configured() {
		return failure(CodeNotConfigured, msgNoAPIKey), false
	}
	return Result{}, true
}

// FirstPage answers from the cache or from page one of the upstream search.
// Only single-page result sets are cached here; deeper sets are left for
// BatchPages.
func (a *Aggregator) FirstPage(ctx context.Context, query string, f filter.Filters) Result {
	if res, ok := a.precheck(query); !ok {
		return res
	}
	key := CacheKey(query, f.Year)

	if entry, ok := a.cache.get(ctx, key); ok {
		filtered := f.Apply(entry.Movies)
		return Result{
			Success:      true,
			Data:         filtered,
			TotalPages:   min(pageCount(len(filtered)), a.cfg.BatchCap),
			TotalResults: len(filtered),
			Cached:       true,
		}
	}

	start := time.Now()
	page, err := a.source.SearchPage(ctx, query, f.Year, 1)
	if err != nil || page == nil || len(page.Search) == 0 {
		if err != nil {
			a.log.Debug("first page fetch failed", "query", query, "error", err)
		}
		return failure(CodeNoResults, fmt.Sprintf(msgNoResultsFmt, query))
	}

	total := page.Total()
	totalPages := max(min(pageCount(total), a.cfg.FirstPageCap), 1)

	records := uniqueRecords(a.details(ctx, stubIDs(page.Search)))
	if totalPages == 1 {
		a.cache.set(ctx, key, CacheEntry{Movies: records, TotalResults: total})
	}

	filtered := f.Apply(records)
	a.log.Info("first page complete",
		"query", query,
		"results", len(records),
		"matches", len(filtered),
		"total_pages", totalPages,
		"duration_ms", time.Since(start).Milliseconds())

	if len(filtered) == 0 {
		return failure(CodeNoMatches, msgNoMatches)
	}
	return Result{
		Success:      true,
		Data:         filtered,
		TotalPages:   totalPages,
		TotalResults: total,
	}
}

// BatchPages fetches pages 1..endPage concurrently, enriches every distinct
// hit and overwrites the cache with the aggregated list. endPage is clamped
// to [1, BatchCap]. Failed pages and failed lookups are skipped.
func (a *Aggregator) BatchPages(ctx context.Context, query string, endPage int, f filter.Filters) Result {
	if res, ok := a.precheck(query); !ok {
		return res
	}
	endPage = max(min(endPage, a.cfg.BatchCap), 1)
	key := CacheKey(query, f.Year)

	start := time.Now()
	pages := a.pages(ctx, query, f.Year, endPage)

	var ids []string
	total := 0
	for i, p := range pages {
		if p == nil {
			continue
		}
		if i == 0 {
			total = p.Total()
		}
		ids = append(ids, stubIDs(uniqueStubs(p.Search))...)
	}
	if len(ids) == 0 {
		a.log.Info("batch found nothing", "query", query, "pages", endPage)
		return Result{Success: true, Data: []movie.Record{}}
	}

	records := uniqueRecords(a.details(ctx, ids))
	a.cache.set(ctx, key, CacheEntry{Movies: records, TotalResults: total})

	filtered := f.Apply(records)
	a.log.Info("batch complete",
		"query", query,
		"pages", endPage,
		"results", len(records),
		"matches", len(filtered),
		"duration_ms", time.Since(start).Milliseconds())

	// Totals are left unset; the caller has them from FirstPage.
	return Result{Success: true, Data: filtered}
}

// Search runs FirstPage and, when more pages exist and the answer did not
// come from the cache, starts a background BatchPages for the same query.
// The background run is detached from ctx and coalesced per cache key.
func (a *Aggregator) Search(ctx context.Context, query string, f filter.Filters) Result {
	res := a.FirstPage(ctx, query, f)
	if !res.Success || res.Cached || res.TotalPages <= 1 {
		return res
	}

	endPage := min(res.TotalPages, a.cfg.BatchCap)
	key := CacheKey(query, f.Year)
	// The batch result is only consumed through the cache, so the filters
	// that shape its return value are irrelevant; only Year reaches upstream.
	batchFilters := filter.Filters{Year: f.Year}
	if a.tasks.Go(key, func(ctx context.Context) {
		a.BatchPages(ctx, query, endPage, batchFilters)
	}) {
		a.log.Debug("background batch started", "query", query, "end_page", endPage)
	}
	return res
}

// Lookup fetches a single title as a normalized record.
func (a *Aggregator) Lookup(ctx context.Context, imdbID string) (movie.Record, error) {
	t, err := a.source.Title(ctx, imdbID)
	if err != nil {
		return movie.Record{}, err
	}
	return t.Record(), nil
}

// Details resolves ids concurrently, preserving order. Failed lookups are
// dropped.
func (a *Aggregator) Details(ctx context.Context, ids []string) []movie.Record {
	return a.details(ctx, ids)
}

func (a *Aggregator) details(ctx context.Context, ids []string) []movie.Record {
	slots := make([]*movie.Record, len(ids))

	var g errgroup.Group
	g.SetLimit(a.cfg.DetailConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			t, err := a.source.Title(ctx, id)
			if err != nil || t == nil {
				a.log.Debug("detail lookup failed", "imdb_id", id, "error", err)
				return nil
			}
			rec := t.Record()
			slots[i] = &rec
			return nil
		})
	}
	_ = g.Wait()

	out := make([]movie.Record, 0, len(ids))
	for _, r := range slots {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// pages fetches pages 1..n concurrently. The result is indexed by page-1;
// failed pages are nil.
func (a *Aggregator) pages(ctx context.Context, query, year string, n int) []*omdb.SearchPage {
	out := make([]*omdb.SearchPage, n)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pageStart := time.Now()
			p, err := a.source.SearchPage(ctx, query, year, i+1)
			if err != nil || p == nil {
				a.log.Debug("page fetch failed", "query", query, "page", i+1, "error", err)
				return
			}
			a.log.Debug("page fetched",
				"query", query,
				"page", i+1,
				"results", len(p.Search),
				"duration_ms", time.Since(pageStart).Milliseconds())
			out[i] = p
		}()
	}
	wg.Wait()
	return out
}

func stubIDs(stubs []omdb.Stub) []string {
	ids := make([]string, 0, len(stubs))
	for _, s := range stubs {
		ids = append(ids, s.IMDbID)
	}
	return ids
}

func pageCount(results int) int {
	return (results + omdb.ResultsPerPage - 1) / omdb.ResultsPerPage
}

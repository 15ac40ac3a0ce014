package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	v1 "github.com/vmunix/reelgo/internal/api/v1"
	"github.com/vmunix/reelgo/internal/auth"
	"github.com/vmunix/reelgo/internal/config"
	"github.com/vmunix/reelgo/internal/kv"
	"github.com/vmunix/reelgo/internal/omdb"
	"github.com/vmunix/reelgo/internal/search"
	"github.com/vmunix/reelgo/internal/server"
	"github.com/vmunix/reelgo/internal/users"
	"github.com/vmunix/reelgo/internal/watchlist"
)

const prunePeriod = time.Hour

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// logOutput returns stdout, teed into a rotating file when path is set.
func logOutput(path string) (io.Writer, io.Closer, error) {
	if path == "" {
		return os.Stdout, nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileWriter := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	return io.MultiWriter(os.Stdout, fileWriter), fileWriter, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// app holds the wired components.
type app struct {
	store      kv.Store
	aggregator *search.Aggregator
	handler    http.Handler
}

func buildApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	store, err := kv.Open(ctx, cfg.Store, logger.With("component", "store"))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	omdbClient := omdb.NewClient(cfg.OMDb.APIKey,
		omdb.WithBaseURL(cfg.OMDb.BaseURL),
		omdb.WithTimeout(cfg.OMDb.Timeout),
		omdb.WithLogger(logger.With("component", "omdb")),
	)
	if !omdbClient.Configured() {
		logger.Warn("omdb api key not configured, searches will fail")
	}

	aggregator := search.NewAggregator(omdbClient, store, search.Config{
		CacheTTL:          cfg.Cache.SearchTTL,
		DetailConcurrency: cfg.Search.DetailConcurrency,
		FirstPageCap:      cfg.Search.FirstPageCap,
		BatchCap:          cfg.Search.BatchCap,
	}, logger.With("component", "search"))

	userStore := users.NewStore(store)
	accounts := auth.NewService(userStore,
		auth.WithBcryptCost(cfg.Auth.BcryptCost),
		auth.WithLogger(logger.With("component", "auth")),
	)
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	watchlists := watchlist.NewService(userStore, aggregator, logger.With("component", "watchlist"))

	api, err := v1.NewWithDeps(v1.ServerDeps{
		Accounts:  accounts,
		Tokens:    tokens,
		Users:     userStore,
		Searcher:  aggregator,
		Watchlist: watchlists,
	}, v1.Config{
		Version:     version,
		StoreDriver: cfg.Store.Driver,
	}, logger.With("component", "api"))
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &app{
		store:      store,
		aggregator: aggregator,
		handler:    logRequests(api.Handler(), logger),
	}, nil
}

func runServer(configPath string) error {
	path, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	out, logCloser, err := logOutput(cfg.Server.LogFile)
	if err != nil {
		return err
	}
	if logCloser != nil {
		defer func() { _ = logCloser.Close() }()
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	logger.Info("server starting",
		"addr", addr,
		"config", path,
		"store", cfg.Store.Driver,
		"omdb", cfg.OMDb.APIKey != "",
		"log_level", cfg.Server.LogLevel,
	)

	runner := server.NewRunner(server.Config{
		Addr:            addr,
		ShutdownTimeout: 30 * time.Second,
		PruneInterval:   prunePeriod,
	}, a.handler, logger.With("component", "runner"))
	runner.Drain(a.aggregator.Tasks())
	if p, ok := a.store.(server.Pruner); ok {
		runner.Prune(p)
	}
	runner.OnClose(a.store.Close)

	return runner.Run(ctx)
}

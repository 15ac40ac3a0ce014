// Package server runs the HTTP listener and background housekeeping under one lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Config for the runner.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	PruneInterval   time.Duration // 0 disables pruning
}

// Drainer waits for in-flight background work.
type Drainer interface {
	Drain(ctx context.Context) error
}

// Pruner removes expired entries from a store.
type Pruner interface {
	Prune(ctx context.Context) (int64, error)
}

// Runner manages the server components.
type Runner struct {
	config  Config
	handler http.Handler
	logger  *slog.Logger

	drainers []Drainer
	pruner   Pruner
	closers  []func() error

	// ready is closed once the listener is bound; addr is set before.
	ready chan struct{}
	addr  string
}

// NewRunner creates a new runner.
func NewRunner(cfg Config, handler http.Handler, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	return &Runner{
		config:  cfg,
		handler: handler,
		logger:  logger,
		ready:   make(chan struct{}),
	}
}

// Drain registers background work to wait for after the listener stops.
func (r *Runner) Drain(d Drainer) {
	r.drainers = append(r.drainers, d)
}

// Prune registers a store to prune every PruneInterval.
func (r *Runner) Prune(p Pruner) {
	r.pruner = p
}

// OnClose registers a function run last during shutdown, in registration order.
func (r *Runner) OnClose(fn func() error) {
	r.closers = append(r.closers, fn)
}

// Addr returns the bound listen address once Run has started listening.
func (r *Runner) Addr() string {
	<-r.ready
	return r.addr
}

// Run serves until ctx is canceled, then shuts down gracefully.
// It blocks until every component has stopped.
func (r *Runner) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.config.Addr)
	if err != nil {
		close(r.ready)
		return errors.Join(fmt.Errorf("listen %s: %w", r.config.Addr, err), r.close())
	}
	r.addr = ln.Addr().String()
	close(r.ready)

	srv := &http.Server{
		Handler:           r.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("listening", "addr", r.addr)
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	if r.pruner != nil && r.config.PruneInterval > 0 {
		g.Go(func() error {
			r.runPruner(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return r.shutdown(srv)
	})

	err = g.Wait()
	if cerr := r.close(); err == nil {
		err = cerr
	}
	return err
}

func (r *Runner) runPruner(ctx context.Context) {
	ticker := time.NewTicker(r.config.PruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := r.pruner.Prune(ctx)
			if err != nil {
				r.logger.Warn("prune failed", "error", err)
				continue
			}
			if n > 0 {
				r.logger.Debug("pruned expired entries", "count", n)
			}
		}
	}
}

func (r *Runner) shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.ShutdownTimeout)
	defer cancel()

	start := time.Now()
	var errs []error
	if err := srv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	for _, d := range r.drainers {
		if err := d.Drain(ctx); err != nil {
			errs = append(errs, fmt.Errorf("drain: %w", err))
		}
	}
	r.logger.Info("shutdown complete", "duration_ms", time.Since(start).Milliseconds())
	return errors.Join(errs...)
}

func (r *Runner) close() error {
	var errs []error
	for _, fn := range r.closers {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

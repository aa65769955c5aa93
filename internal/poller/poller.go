package poller

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/garfunkel/nastie/internal/store"
	"github.com/garfunkel/nastie/internal/truenas"
	"github.com/garfunkel/nastie/internal/view"
)

// Source supplies the two API collections a refresh cycle needs. It is
// satisfied by [*truenas.Client].
type Source interface {
	Jails(ctx context.Context) ([]truenas.Jail, error)
	Plugins(ctx context.Context) ([]truenas.Plugin, error)
}

// Poller periodically refreshes the jail snapshot from a [Source].
//
// The poller runs one background goroutine: an immediate refresh on start,
// then one refresh per tick. Each cycle fetches jails and plugins, merges
// them and replaces the snapshot in a single publish, so readers never see
// a half-updated view. When a cycle fails the snapshot is left untouched
// and the next tick tries again.
//
// All lifecycle methods (Start, Stop) are safe for concurrent use.
type Poller struct {
	source   Source
	snapshot *store.Snapshot
	interval time.Duration
	logger   *slog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu      sync.Mutex
	started bool
	stopped bool
}

// New creates a [Poller] that publishes into snapshot every interval.
//
// The poller must be started with [Poller.Start] and stopped with
// [Poller.Stop].
func New(source Source, snapshot *store.Snapshot, interval time.Duration, logger *slog.Logger) *Poller {
	return &Poller{
		source:   source,
		snapshot: snapshot,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the refresh loop in a background goroutine.
//
// Start is non-blocking and returns immediately. The poller will:
//  1. Refresh the snapshot immediately
//  2. Refresh again on every interval tick
//  3. Continue until [Poller.Stop] is called or the context is cancelled
//
// If ctx is nil, context.Background() is used as the parent context.
// Start is idempotent; subsequent calls after the first are no-ops.
// If Stop was called before Start, Start is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started || p.stopped {
		p.mu.Unlock()
		return
	}
	p.started = true

	if ctx == nil {
		ctx = context.Background()
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	pollCtx := p.ctx // capture under lock to avoid race
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()

		p.refresh(pollCtx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticker.C:
				p.refresh(pollCtx)
			}
		}
	}()
}

// Stop halts the poller and waits for the refresh loop to exit.
//
// Stop is idempotent and safe to call multiple times. Calling Stop before
// Start is a safe no-op. An in-flight refresh is cancelled through its
// context rather than awaited to completion.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		if p.cancel != nil {
			p.cancel()
		}
	}
	p.mu.Unlock()

	p.wg.Wait()
}

// refresh runs one guarded refresh cycle. Failures are logged and the
// previous snapshot stays published; a panic anywhere in the cycle is
// recovered so the loop survives to the next tick.
func (p *Poller) refresh(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			stack := debug.Stack()

			// log full context server-side for debugging
			p.logger.Error("refresh panic",
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(stack),
			)
		}
	}()

	start := time.Now()

	if err := p.cycle(ctx); err != nil {
		if ctx.Err() != nil {
			// shutting down, not a refresh failure
			return
		}
		p.logger.Warn("refresh failed, keeping previous snapshot", "error", err)
		return
	}

	p.logger.Debug("refresh complete",
		"jails", len(p.snapshot.Current()),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
}

// cycle fetches both collections and publishes the merged result. The
// snapshot is only replaced when both fetches succeed.
func (p *Poller) cycle(ctx context.Context) error {
	jails, err := p.source.Jails(ctx)
	if err != nil {
		return err
	}

	plugins, err := p.source.Plugins(ctx)
	if err != nil {
		return err
	}

	p.snapshot.Replace(view.Merge(jails, plugins))
	return nil
}

// Package goroutine runs background work with a bounded concurrency limit
// and panic recovery. Event publication and email delivery go through it so
// a slow broker never blocks a request handler.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"go.uber.org/atomic"

	"github.com/VENUHARGI/OnlineVoting/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 100

// Manager runs functions in goroutines with a configurable concurrency limit.
//
// It collects errors returned by tasks and can be waited on using Wait.
type Manager struct {
	mu       sync.Mutex
	errs     []error
	wg       sync.WaitGroup
	sema     chan struct{}
	closed   atomic.Bool
	inFlight atomic.Int64
}

// NewManager creates a new Manager with the provided maximum concurrency.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{
		sema: make(chan struct{}, maxGoroutine),
	}
}

// InFlight reports how many tasks are currently running.
func (g *Manager) InFlight() int64 {
	if g == nil {
		return 0
	}

	return g.inFlight.Load()
}

// Go schedules a function to run in a goroutine if capacity is available.
//
// If the manager is already at its concurrency limit or has been closed by
// Wait, the function is not run and a warning is logged.
func (g *Manager) Go(pCtx context.Context, f func(ctx context.Context) error) {
	if g == nil {
		return
	}

	if g.closed.Load() {
		slog.WarnContext(pCtx, "goroutine manager is closed, skipping new goroutine")
		return
	}

	select {
	case g.sema <- struct{}{}:
		g.wg.Add(1)
		g.inFlight.Inc()

		go func() {
			defer func() {
				g.inFlight.Dec()
				<-g.sema
				g.wg.Done()

				if rvr := recover(); rvr != nil {
					stack := debug.Stack()
					paths := stacktrace.InternalPaths(stack)
					if len(paths) == 0 {
						slog.ErrorContext(pCtx, "panic occurred in goroutine", "stack", string(stack))
					} else {
						slog.ErrorContext(pCtx, "panic occurred in goroutine", "stack", paths)
					}
				}
			}()

			select {
			case <-pCtx.Done():
				slog.WarnContext(pCtx, "goroutine canceled", "because", pCtx.Err())
			default:
				if err := f(pCtx); err != nil {
					g.mu.Lock()
					g.errs = append(g.errs, err)
					g.mu.Unlock()
				}
			}
		}()

	default:
		slog.WarnContext(pCtx, "maximum goroutine limit reached, failed to start new goroutine")
	}
}

// Wait blocks until all scheduled goroutines finish and returns any collected errors.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.closed.Store(true)
	g.wg.Wait()

	return errors.Join(g.errs...)
}

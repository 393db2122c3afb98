package async

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
)

// Dispatcher runs handlers in the background, detached from the request
// context but bound to its own lifetime. Close cancels pending handlers and
// waits for running ones.
type Dispatcher struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher
func NewDispatcher() *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{ctx: ctx, cancel: cancel}
}

// Dispatch executes handler asynchronously with panic recovery. The logger and
// AuthContext of ctx are carried over; its cancellation is not.
func (d *Dispatcher) Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	d.After(ctx, 0, handler)
}

// After executes handler once delay has elapsed. The handler is dropped if
// the dispatcher is closed first.
func (d *Dispatcher) After(ctx context.Context, delay time.Duration, handler func(ctx context.Context) error) {
	newCtx, cancel := d.backgroundContext(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				ctxlog.From(newCtx).Error("Panic in async handler",
					"recover", r,
					"stack", string(stack),
				)
			}
		}()

		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-newCtx.Done():
				ctxlog.From(newCtx).Debug("Async handler cancelled before delay elapsed", "delay", delay)
				return
			}
		}

		if err := handler(newCtx); err != nil {
			ctxlog.From(newCtx).Error("Error in async handler",
				"error", err,
			)
		}
	}()
}

// Close cancels pending handlers and waits for all goroutines to exit
func (d *Dispatcher) Close() {
	d.cancel()
	d.wg.Wait()
}

// Wait blocks until every dispatched handler has returned
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// backgroundContext derives from the dispatcher lifetime and copies the
// values handlers rely on.
func (d *Dispatcher) backgroundContext(ctx context.Context) (context.Context, context.CancelFunc) {
	newCtx, cancel := context.WithCancel(d.ctx)

	if logger := ctxlog.From(ctx); logger != nil {
		newCtx = ctxlog.With(newCtx, logger)
	}

	if authCtx, ok := model.GetAuthContext(ctx); ok {
		newCtx = model.WithAuthContext(newCtx, authCtx.Clone())
	}

	return newCtx, cancel
}

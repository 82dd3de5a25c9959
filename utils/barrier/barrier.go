// Package barrier provides a one-shot initialization gate.
//
// The first call to Wait starts the setup function; every caller, concurrent
// or later, blocks on the same completion signal and observes the same result.
package barrier

import (
	"context"
	"sync"
)

type SetupFunc func(ctx context.Context) error

type Barrier struct {
	setup SetupFunc
	once  sync.Once
	done  chan struct{}
	err   error
}

func New(setup SetupFunc) *Barrier {
	return &Barrier{
		setup: setup,
		done:  make(chan struct{}),
	}
}

// Wait starts setup if needed and blocks until it finishes or ctx is done.
// Setup runs on a context detached from the caller, so a cancelled waiter
// never aborts setup for the others.
func (b *Barrier) Wait(ctx context.Context) error {
	b.once.Do(func() {
		go b.run(context.WithoutCancel(ctx))
	})

	select {
	case <-b.done:
		return b.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ready reports whether setup has completed successfully.
func (b *Barrier) Ready() bool {
	select {
	case <-b.done:
		return b.err == nil
	default:
		return false
	}
}

func (b *Barrier) run(ctx context.Context) {
	defer close(b.done)
	b.err = b.setup(ctx)
}

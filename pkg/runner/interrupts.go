package runner

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// settleWindow is how long Settle waits for a signal to follow an input error.
const settleWindow = 100 * time.Millisecond

// Interrupts turns SIGINT and SIGTERM into cancellation of a run context.
type Interrupts struct {
	ctx  context.Context
	stop context.CancelFunc
}

// WatchInterrupts starts listening for signals until Stop is called.
func WatchInterrupts(parent context.Context) *Interrupts {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	return &Interrupts{ctx: ctx, stop: stop}
}

// Context is cancelled on the first signal.
func (i *Interrupts) Context() context.Context {
	return i.ctx
}

// Stop releases the signal handlers.
func (i *Interrupts) Stop() {
	i.stop()
}

// Settle reports whether err from a run was caused by the user interrupting
// it. Some terminals deliver EOF on stdin slightly before the signal itself,
// so an abort is given a short window for the cancellation to land.
func (i *Interrupts) Settle(err error) bool {
	if err == nil {
		return false
	}
	if i.ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return true
	}
	if !errors.Is(err, ErrAborted) {
		return false
	}
	select {
	case <-i.ctx.Done():
	case <-time.After(settleWindow):
	}
	return true
}

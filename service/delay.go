package service

import (
	"context"
	"time"
)

// Delayer suspends the calling goroutine for a duration. Injected into the
// engine, live executor and player so tests can substitute an instant fake.
type Delayer interface {
	// Delay waits for d, returning early with ctx.Err() if the context is
	// cancelled. d <= 0 returns immediately.
	Delay(ctx context.Context, d time.Duration) error
}

const (
	// below this remaining time a coarse sleep is too imprecise; switch
	// to spin-wait bursts
	spinThreshold = 10 * time.Millisecond

	// coarse sleeps stop this far short of the deadline
	sleepMargin = 2 * time.Millisecond

	// length of one spin-wait burst
	spinBurst = 50 * time.Microsecond
)

// PreciseDelay is a hybrid coarse-sleep + spin-wait delay. Long waits are
// cheap cancellable timer sleeps; the final few milliseconds are short sleep
// bursts re-checking the deadline, which gets sub-millisecond accuracy
// without pinning a core for the whole wait.
type PreciseDelay struct{}

func (PreciseDelay) Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	deadline := time.Now().Add(d)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil
		}

		if remaining > spinThreshold {
			t := time.NewTimer(remaining - sleepMargin)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
			continue
		}

		// spin phase
		for time.Until(deadline) > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			time.Sleep(spinBurst)
		}
		return nil
	}
}

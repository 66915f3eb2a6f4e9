package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"padcontrol/models"
	"padcontrol/pad"
)

// cancelAckWait bounds how long Cancel waits for the playback loop to
// acknowledge the signal before zeroing the device anyway.
const cancelAckWait = 250 * time.Millisecond

// batchWindowMs: events whose timestamps fall within this window of the
// current instant are collapsed into one submitted frame.
const batchWindowMs = 1

// Player replays a recorded event stream onto the virtual device with the
// same timing discipline as the scheduling engine. At most one playback is
// active per device; finishing or cancelling always zeroes the device.
type Player struct {
	store  *RecordingStore
	device *pad.Device
	delay  Delayer
	hub    Broadcaster

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPlayer(store *RecordingStore, device *pad.Device, delay Delayer, hub Broadcaster) *Player {
	return &Player{
		store:  store,
		device: device,
		delay:  delay,
		hub:    hub,
	}
}

// Play replays the named recording, blocking until it completes or is
// cancelled. Any playback already in progress is cancelled first.
func (p *Player) Play(name string) error {
	rec, err := p.store.GetByName(name)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("%w: no recording named %q", ErrInvalidRequest, name)
	}
	if len(rec.Events) == 0 {
		return fmt.Errorf("%w: recording %q has no events", ErrInvalidRequest, name)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	// Replace any active playback in one step so two concurrent Plays
	// can never both believe they own the device.
	p.mu.Lock()
	prevCancel, prevDone := p.cancel, p.done
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	if prevCancel != nil {
		prevCancel()
		select {
		case <-prevDone:
		case <-time.After(cancelAckWait):
			log.Println("⚠️ Previous playback did not stop in time")
		}
	}

	log.Printf("▶️ Playing recording '%s' (%d events)", name, len(rec.Events))
	p.hub.Broadcast("player", map[string]interface{}{
		"type": "playback_started",
		"name": name,
	})

	cancelled := p.run(ctx, rec)

	p.mu.Lock()
	if p.done == done {
		p.cancel = nil
		p.done = nil
	}
	p.mu.Unlock()
	cancel()

	// safety reset: a cut-short or finished playback never leaves a
	// button stuck down
	if err := p.device.Reset(); err != nil {
		log.Printf("Zero-out after playback failed: %v", err)
	}

	status := "playback_finished"
	if cancelled {
		status = "playback_cancelled"
		log.Printf("⏹️ Playback of '%s' cancelled", name)
	} else {
		log.Printf("✅ Playback of '%s' finished", name)
	}
	p.hub.Broadcast("player", map[string]interface{}{
		"type": status,
		"name": name,
	})
	// Waiters (Cancel, a replacing Play) are released only after the
	// device has been zeroed.
	close(done)
	return nil
}

// run replays events in ascending timestamp order, collapsing events that
// share (within the batch window) a timestamp into one frame where the most
// recent state wins. Returns true if the playback was cancelled mid-stream.
func (p *Player) run(ctx context.Context, rec *models.Recording) bool {
	start := time.Now()
	events := rec.Events

	for i := 0; i < len(events); {
		due := time.Duration(events[i].TimestampMs) * time.Millisecond
		if remaining := due - time.Since(start); remaining > 0 {
			if err := p.delay.Delay(ctx, remaining); err != nil {
				return true
			}
		}

		// collect every event already due; applying only the last one
		// keeps same-timestamp deltas to a single consistent frame
		nowMs := time.Since(start).Milliseconds()
		j := i
		for j+1 < len(events) && events[j+1].TimestampMs <= nowMs+batchWindowMs {
			j++
		}

		ev := events[j]
		if err := p.device.Apply(func(s *pad.State) {
			s.ApplySnapshot(ev.ControllerState)
		}); err != nil {
			log.Printf("Playback submit failed: %v", err)
		}
		i = j + 1

		select {
		case <-ctx.Done():
			return true
		default:
		}
	}
	return false
}

// Cancel signals the running playback to stop, waits a bounded time for it
// to acknowledge and zeroes the device regardless. Fails with
// ErrConflictingState when no playback is active.
func (p *Player) Cancel() error {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	if cancel == nil {
		return fmt.Errorf("%w: no playback in progress", ErrConflictingState)
	}

	cancel()

	select {
	case <-done:
	case <-time.After(cancelAckWait):
		log.Println("⚠️ Playback did not acknowledge cancel in time")
	}

	// zero out whether or not the loop acknowledged
	if err := p.device.Reset(); err != nil {
		log.Printf("Zero-out after cancel failed: %v", err)
	}

	p.mu.Lock()
	if p.done == done {
		p.cancel = nil
		p.done = nil
	}
	p.mu.Unlock()
	return nil
}

// Playing reports whether a playback is in progress.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

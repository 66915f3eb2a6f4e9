package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"padcontrol/models"
	"padcontrol/pad"
)

// Unknown-action policies for Engine.Execute
const (
	// PolicySkip logs and drops unknown action types, keeping the rest of
	// the batch (the original interpreter's tolerant behavior)
	PolicySkip = "skip"

	// PolicyReject refuses the whole batch before any device mutation
	PolicyReject = "reject"
)

// scheduledAction is an action stamped with its absolute offset from
// execution start. Actions sharing an offset form one parallel group.
type scheduledAction struct {
	action   models.ActionData
	bind     binding
	offsetMs int
}

// Engine executes batches of timed actions against one virtual device.
// Actions not separated by a wait start at the same offset and their onsets
// are submitted as a single frame; a wait advances the shared timestep cursor
// so everything after it starts strictly later.
type Engine struct {
	device *pad.Device
	delay  Delayer
	policy string
}

// NewEngine creates an engine for the given device. policy is PolicySkip or
// PolicyReject for unknown action types.
func NewEngine(device *pad.Device, delay Delayer, policy string) *Engine {
	if policy != PolicyReject {
		policy = PolicySkip
	}
	return &Engine{
		device: device,
		delay:  delay,
		policy: policy,
	}
}

// buildSchedule stamps each action with the running timestep cursor. Waits
// and settimestep only move the cursor and produce no scheduled action.
func (e *Engine) buildSchedule(actions []models.ActionData) ([]scheduledAction, error) {
	cursor := 0
	scheduled := make([]scheduledAction, 0, len(actions))

	for _, a := range actions {
		t := strings.ToLower(a.Type)
		switch t {
		case "wait":
			ms := a.Milliseconds
			if ms <= 0 {
				ms = trivialWaitMs
			}
			cursor += ms

		case "settimestep":
			if a.Milliseconds >= 0 {
				cursor = a.Milliseconds
			}

		default:
			bind, ok := bindings[t]
			if !ok {
				if e.policy == PolicyReject {
					return nil, fmt.Errorf("%w: unknown action type %q", ErrInvalidRequest, a.Type)
				}
				log.Printf("⚠️ Skipping unknown action type %q", a.Type)
				continue
			}
			scheduled = append(scheduled, scheduledAction{
				action:   a,
				bind:     bind,
				offsetMs: cursor,
			})
		}
	}

	return scheduled, nil
}

// Execute runs a batch to completion. Offset groups are executed in
// ascending order; each group's onsets go out as one submitted frame, and
// each held action releases independently after its own hold duration.
// Execute returns after every release has been submitted.
func (e *Engine) Execute(ctx context.Context, actions []models.ActionData) error {
	scheduled, err := e.buildSchedule(actions)
	if err != nil {
		return err
	}
	if len(scheduled) == 0 {
		return nil
	}

	groups := make(map[int][]scheduledAction)
	for _, sa := range scheduled {
		groups[sa.offsetMs] = append(groups[sa.offsetMs], sa)
	}
	offsets := make([]int, 0, len(groups))
	for off := range groups {
		offsets = append(offsets, off)
	}
	sort.Ints(offsets)

	start := time.Now()
	var releases sync.WaitGroup
	var firstErr error

	for _, off := range offsets {
		group := groups[off]

		remaining := time.Duration(off)*time.Millisecond - time.Since(start)
		if remaining > 0 {
			if err := e.delay.Delay(ctx, remaining); err != nil {
				firstErr = err
				break
			}
		}

		// all onsets in the group are one atomic frame
		if err := e.device.Apply(func(s *pad.State) {
			for _, sa := range group {
				sa.bind.onset(s, sa.action)
			}
		}); err != nil && firstErr == nil {
			firstErr = err
		}

		// releases are independent concurrent waits; one action's
		// release never blocks another's
		for _, sa := range group {
			ms := holdDuration(sa.bind, sa.action)
			if ms <= 0 {
				continue
			}
			releases.Add(1)
			go func(sa scheduledAction, ms int) {
				defer releases.Done()
				// release even if the wait was cut short, so a
				// dying execution never leaves a button down
				e.delay.Delay(ctx, time.Duration(ms)*time.Millisecond)
				if err := e.device.Apply(sa.bind.release); err != nil {
					log.Printf("Release submit failed: %v", err)
				}
			}(sa, ms)
		}
	}

	releases.Wait()
	return firstErr
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"padcontrol/models"
	"padcontrol/pad"
)

// LiveExecutor applies one action to the device immediately and
// synchronously. It shares the device lock with the engine and player, so a
// live press can never interleave a partial frame with a running schedule.
type LiveExecutor struct {
	device *pad.Device
	delay  Delayer
}

func NewLiveExecutor(device *pad.Device, delay Delayer) *LiveExecutor {
	return &LiveExecutor{
		device: device,
		delay:  delay,
	}
}

// Do executes one live action. Momentary presses block until the state has
// reverted; hold actions return with the state still asserted and rely on the
// caller issuing the matching cancel. "complete" zeroes the whole pad in one
// submission.
func (l *LiveExecutor) Do(a models.ActionData) error {
	lb, ok := liveBindings[strings.ToLower(a.Type)]
	if !ok {
		return fmt.Errorf("%w: unknown live action type %q", ErrInvalidRequest, a.Type)
	}

	if err := l.device.Apply(func(s *pad.State) {
		lb.apply(s, a)
	}); err != nil {
		return err
	}

	if lb.revert == nil || lb.pressMs <= 0 {
		return nil
	}

	// momentary press: hold, then revert in a second submission
	l.delay.Delay(context.Background(), time.Duration(lb.pressMs)*time.Millisecond)
	return l.device.Apply(lb.revert)
}

package service

import (
	"testing"

	"padcontrol/models"
	"padcontrol/pad"
)

func TestLiveExecutor(t *testing.T) {
	aBit := uint16(1) << uint(pad.ButtonA)

	t.Run("press reverts after the hold", func(t *testing.T) {
		driver := &fakeDriver{}
		live := NewLiveExecutor(pad.NewDevice(driver), &fakeDelay{})

		if err := live.Do(models.ActionData{Type: "pressa"}); err != nil {
			t.Fatalf("Do failed: %v", err)
		}
		frames := driver.Frames()
		if len(frames) != 2 {
			t.Fatalf("got %d frames, want 2 (press + revert)", len(frames))
		}
		if frames[0].Buttons != aBit {
			t.Errorf("press frame buttons = %#x, want %#x", frames[0].Buttons, aBit)
		}
		if frames[1].Buttons != 0 {
			t.Errorf("revert frame buttons = %#x, want 0", frames[1].Buttons)
		}
	})

	t.Run("hold stays asserted until cancel", func(t *testing.T) {
		driver := &fakeDriver{}
		live := NewLiveExecutor(pad.NewDevice(driver), &fakeDelay{})

		if err := live.Do(models.ActionData{Type: "holda"}); err != nil {
			t.Fatalf("hold failed: %v", err)
		}
		if got := driver.LastFrame().Buttons; got != aBit {
			t.Fatalf("after hold buttons = %#x, want %#x", got, aBit)
		}

		if err := live.Do(models.ActionData{Type: "cancelholda"}); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
		if got := driver.LastFrame().Buttons; got != 0 {
			t.Errorf("after cancel buttons = %#x, want 0", got)
		}
	})

	t.Run("stick hold and cancel", func(t *testing.T) {
		driver := &fakeDriver{}
		live := NewLiveExecutor(pad.NewDevice(driver), &fakeDelay{})

		if err := live.Do(models.ActionData{Type: "holdleftstick", X: 1, Y: -1}); err != nil {
			t.Fatalf("hold failed: %v", err)
		}
		f := driver.LastFrame()
		if f.LX != 32767 || f.LY != -32768 {
			t.Errorf("stick = (%d, %d), want (32767, -32768)", f.LX, f.LY)
		}

		if err := live.Do(models.ActionData{Type: "cancelleftstick"}); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
		f = driver.LastFrame()
		if f.LX != 0 || f.LY != 0 {
			t.Errorf("stick = (%d, %d) after cancel, want (0, 0)", f.LX, f.LY)
		}
	})

	t.Run("complete zeroes everything in one frame", func(t *testing.T) {
		driver := &fakeDriver{}
		live := NewLiveExecutor(pad.NewDevice(driver), &fakeDelay{})

		live.Do(models.ActionData{Type: "holda"})
		live.Do(models.ActionData{Type: "holdrighttrigger"})
		before := len(driver.Frames())

		if err := live.Do(models.ActionData{Type: "complete"}); err != nil {
			t.Fatalf("complete failed: %v", err)
		}
		frames := driver.Frames()
		if len(frames) != before+1 {
			t.Fatalf("complete submitted %d frames, want 1", len(frames)-before)
		}
		if f := frames[len(frames)-1]; f != (pad.FrameReport{}) {
			t.Errorf("final frame = %+v, want all neutral", f)
		}
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		driver := &fakeDriver{}
		live := NewLiveExecutor(pad.NewDevice(driver), &fakeDelay{})

		err := live.Do(models.ActionData{Type: "pressturbo"})
		if !IsInvalid(err) {
			t.Fatalf("got %v, want ErrInvalidRequest", err)
		}
		if n := len(driver.Frames()); n != 0 {
			t.Errorf("device saw %d frames, want 0", n)
		}
	})
}

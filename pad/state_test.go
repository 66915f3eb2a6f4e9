package pad

import (
	"testing"

	"padcontrol/models"
)

func TestNormalizeStick(t *testing.T) {
	cases := []struct {
		in   float64
		want int16
	}{
		{0.0, 0},
		{1.0, 32767},
		{-1.0, -32768}, // lower bound is reachable exactly
		{0.5, 16384},
		{-0.5, -16384},
		{2.0, 32767},   // clamped
		{-2.0, -32768}, // clamped
	}
	for _, c := range cases {
		if got := NormalizeStick(c.in); got != c.want {
			t.Errorf("NormalizeStick(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestNormalizeTrigger(t *testing.T) {
	cases := []struct {
		in   float64
		want uint8
	}{
		{0.0, 0},
		{1.0, 255},
		{0.5, 128},
		{-0.5, 0}, // clamped
		{1.5, 255},
	}
	for _, c := range cases {
		if got := NormalizeTrigger(c.in); got != c.want {
			t.Errorf("NormalizeTrigger(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestStateReport(t *testing.T) {
	var s State
	s.SetButton(ButtonA, true)
	s.SetButton(ButtonDpadRight, true)
	s.SetStick(StickLeft, 1.0, -1.0)
	s.SetTrigger(TriggerRight, 1.0)

	r := s.Report()

	want := uint16(1)<<uint(ButtonA) | uint16(1)<<uint(ButtonDpadRight)
	if r.Buttons != want {
		t.Errorf("buttons = %#x, want %#x", r.Buttons, want)
	}
	if r.LX != 32767 || r.LY != -32768 {
		t.Errorf("left stick = (%d, %d), want (32767, -32768)", r.LX, r.LY)
	}
	if r.RT != 255 || r.LT != 0 {
		t.Errorf("triggers = (%d, %d), want (0, 255)", r.LT, r.RT)
	}

	s.Zero()
	if got := s.Report(); got != (FrameReport{}) {
		t.Errorf("zeroed report = %+v, want empty", got)
	}
}

func TestStateClampsStick(t *testing.T) {
	var s State
	s.SetStick(StickRight, 3.5, -3.5)
	if s.Sticks[StickRight][0] != 1 || s.Sticks[StickRight][1] != -1 {
		t.Errorf("stick staged as (%v, %v), want (1, -1)",
			s.Sticks[StickRight][0], s.Sticks[StickRight][1])
	}
}

func TestApplySnapshot(t *testing.T) {
	var s State
	s.SetButton(ButtonB, true) // must be overwritten

	s.ApplySnapshot(models.ControllerState{
		A:           true,
		View:        true,
		LeftStickX:  -1.0,
		RightStickY: 0.5,
		LeftTrigger: 1.0,
	})

	r := s.Report()
	want := uint16(1)<<uint(ButtonA) | uint16(1)<<uint(ButtonView)
	if r.Buttons != want {
		t.Errorf("buttons = %#x, want %#x", r.Buttons, want)
	}
	if r.LX != -32768 {
		t.Errorf("LX = %d, want -32768", r.LX)
	}
	if r.RY != 16384 {
		t.Errorf("RY = %d, want 16384", r.RY)
	}
	if r.LT != 255 {
		t.Errorf("LT = %d, want 255", r.LT)
	}
}

package pad

import (
	"math"

	"padcontrol/models"
)

// Button identifies one of the virtual pad's digital buttons.
type Button int

const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLeftShoulder
	ButtonRightShoulder
	ButtonView
	ButtonMenu
	ButtonDpadUp
	ButtonDpadDown
	ButtonDpadLeft
	ButtonDpadRight

	numButtons
)

// Stick identifies one of the two analog sticks.
type Stick int

const (
	StickLeft Stick = iota
	StickRight
)

// Trigger identifies one of the two analog triggers.
type Trigger int

const (
	TriggerLeft Trigger = iota
	TriggerRight
)

// State is the staged frame for one virtual device: every field change only
// becomes observable when the device submits the frame. Axes are stored
// normalized; conversion to the wire ranges happens in Report().
type State struct {
	Buttons  [numButtons]bool
	Sticks   [2][2]float64 // [stick][x,y], each in [-1.0, 1.0]
	Triggers [2]float64    // [trigger], each in [0.0, 1.0]
}

// Zero resets every input to neutral.
func (s *State) Zero() {
	*s = State{}
}

func (s *State) SetButton(b Button, pressed bool) {
	s.Buttons[b] = pressed
}

// SetStick stages a stick position. Coordinates are clamped to [-1.0, 1.0]
// independently.
func (s *State) SetStick(st Stick, x, y float64) {
	s.Sticks[st][0] = clamp(x, -1, 1)
	s.Sticks[st][1] = clamp(y, -1, 1)
}

// SetTrigger stages a trigger value, clamped to [0.0, 1.0].
func (s *State) SetTrigger(t Trigger, v float64) {
	s.Triggers[t] = clamp(v, 0, 1)
}

// ApplySnapshot stages a full controller snapshot, used by playback where a
// recorded event replaces the whole frame.
func (s *State) ApplySnapshot(snap models.ControllerState) {
	s.Buttons[ButtonA] = snap.A
	s.Buttons[ButtonB] = snap.B
	s.Buttons[ButtonX] = snap.X
	s.Buttons[ButtonY] = snap.Y
	s.Buttons[ButtonLeftShoulder] = snap.LeftShoulder
	s.Buttons[ButtonRightShoulder] = snap.RightShoulder
	s.Buttons[ButtonView] = snap.View
	s.Buttons[ButtonMenu] = snap.Menu
	s.Buttons[ButtonDpadUp] = snap.DpadUp
	s.Buttons[ButtonDpadDown] = snap.DpadDown
	s.Buttons[ButtonDpadLeft] = snap.DpadLeft
	s.Buttons[ButtonDpadRight] = snap.DpadRight
	s.SetStick(StickLeft, snap.LeftStickX, snap.LeftStickY)
	s.SetStick(StickRight, snap.RightStickX, snap.RightStickY)
	s.SetTrigger(TriggerLeft, snap.LeftTrigger)
	s.SetTrigger(TriggerRight, snap.RightTrigger)
}

// FrameReport is the wire-level form of one submitted frame. Buttons are a
// bitmask indexed by Button, axes are signed 16-bit, triggers 0..255.
type FrameReport struct {
	Buttons uint16
	LX, LY  int16
	RX, RY  int16
	LT, RT  uint8
}

// Report converts the staged state to its wire-level form.
func (s *State) Report() FrameReport {
	var r FrameReport
	for b := Button(0); b < numButtons; b++ {
		if s.Buttons[b] {
			r.Buttons |= 1 << uint(b)
		}
	}
	r.LX = NormalizeStick(s.Sticks[StickLeft][0])
	r.LY = NormalizeStick(s.Sticks[StickLeft][1])
	r.RX = NormalizeStick(s.Sticks[StickRight][0])
	r.RY = NormalizeStick(s.Sticks[StickRight][1])
	r.LT = NormalizeTrigger(s.Triggers[TriggerLeft])
	r.RT = NormalizeTrigger(s.Triggers[TriggerRight])
	return r
}

// NormalizeStick maps a clamped [-1.0, 1.0] value onto the full signed 16-bit
// range: 0 -> 0, 1.0 -> 32767, -1.0 -> -32768. Negative values scale by 32768
// so the lower bound is reachable exactly.
func NormalizeStick(v float64) int16 {
	v = clamp(v, -1, 1)
	if v < 0 {
		return int16(math.Round(v * 32768))
	}
	return int16(math.Round(v * 32767))
}

// NormalizeTrigger maps a clamped [0.0, 1.0] value to 0..255.
func NormalizeTrigger(v float64) uint8 {
	return uint8(math.Round(clamp(v, 0, 1) * 255))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

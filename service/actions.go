package service

import (
	"padcontrol/models"
	"padcontrol/pad"
)

const (
	// default hold for momentary button/trigger presses
	defaultPressMs = 100

	// hold for stick flicks
	flickMs = 50

	// cursor advance for a wait with no duration
	trivialWaitMs = 25
)

// binding ties one scheduled action type to its device mutations: the onset
// applied at the action's offset, the release applied after the hold, and the
// default hold used when the action carries none. A resolved hold of zero
// means the action has no release step.
type binding struct {
	onset         func(*pad.State, models.ActionData)
	release       func(*pad.State)
	defaultHoldMs int
}

// liveBinding is the immediate-mode behavior of one live action type. A
// non-nil revert with pressMs > 0 makes the action a momentary press; a nil
// revert leaves the state asserted until a matching cancel action.
type liveBinding struct {
	apply   func(*pad.State, models.ActionData)
	revert  func(*pad.State)
	pressMs int
}

// bindings and liveBindings map lower-case wire action types ("pressa",
// "holdleftstick", ...) to behavior. Built from the control tables below,
// which is the whole button surface; adding a control adds every press/hold/
// cancel variant at once.
var (
	bindings     = map[string]binding{}
	liveBindings = map[string]liveBinding{}
)

var buttonControls = map[string]pad.Button{
	"a":             pad.ButtonA,
	"b":             pad.ButtonB,
	"x":             pad.ButtonX,
	"y":             pad.ButtonY,
	"leftshoulder":  pad.ButtonLeftShoulder,
	"rightshoulder": pad.ButtonRightShoulder,
	"view":          pad.ButtonView,
	"menu":          pad.ButtonMenu,
	"dpadup":        pad.ButtonDpadUp,
	"dpaddown":      pad.ButtonDpadDown,
	"dpadleft":      pad.ButtonDpadLeft,
	"dpadright":     pad.ButtonDpadRight,
}

var stickControls = map[string]pad.Stick{
	"leftstick":  pad.StickLeft,
	"rightstick": pad.StickRight,
}

var triggerControls = map[string]pad.Trigger{
	"lefttrigger":  pad.TriggerLeft,
	"righttrigger": pad.TriggerRight,
}

func init() {
	for name, b := range buttonControls {
		b := b
		onset := func(s *pad.State, _ models.ActionData) { s.SetButton(b, true) }
		release := func(s *pad.State) { s.SetButton(b, false) }

		bindings["press"+name] = binding{onset, release, defaultPressMs}
		liveBindings["press"+name] = liveBinding{onset, release, defaultPressMs}
		liveBindings["hold"+name] = liveBinding{apply: onset}
		liveBindings["cancelhold"+name] = liveBinding{apply: func(s *pad.State, _ models.ActionData) { release(s) }}
	}

	for name, st := range stickControls {
		st := st
		onset := func(s *pad.State, a models.ActionData) { s.SetStick(st, a.X, a.Y) }
		release := func(s *pad.State) { s.SetStick(st, 0, 0) }

		bindings["hold"+name] = binding{onset, release, 0}
		bindings["flick"+name] = binding{onset, release, flickMs}
		liveBindings["hold"+name] = liveBinding{apply: onset}
		liveBindings["flick"+name] = liveBinding{onset, release, flickMs}
		liveBindings["cancel"+name] = liveBinding{apply: func(s *pad.State, _ models.ActionData) { release(s) }}
	}

	for name, t := range triggerControls {
		t := t
		onset := func(s *pad.State, _ models.ActionData) { s.SetTrigger(t, 1.0) }
		release := func(s *pad.State) { s.SetTrigger(t, 0) }

		bindings["press"+name] = binding{onset, release, defaultPressMs}
		liveBindings["press"+name] = liveBinding{onset, release, defaultPressMs}
		liveBindings["hold"+name] = liveBinding{apply: onset}
		liveBindings["cancelhold"+name] = liveBinding{apply: func(s *pad.State, _ models.ActionData) { release(s) }}
	}

	liveBindings["complete"] = liveBinding{apply: func(s *pad.State, _ models.ActionData) { s.Zero() }}
}

// holdDuration resolves an action's hold in milliseconds: an explicit
// duration wins, otherwise the binding's default. Zero means no release.
func holdDuration(b binding, a models.ActionData) int {
	if a.Milliseconds > 0 {
		return a.Milliseconds
	}
	return b.defaultHoldMs
}

// Package gamepad reads full state snapshots from a physical game controller
// via SDL. The first connected controller is used.
package gamepad

import (
	"fmt"
	"log"
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"padcontrol/models"
)

// Source is the physical input capability: a full state snapshot per poll.
type Source interface {
	// Poll reads the current controller state. ok is false when no
	// controller is connected.
	Poll() (snap models.ControllerState, ok bool)
	Connected() bool
	Close()
}

// SDLSource reads the first connected game controller through SDL.
type SDLSource struct {
	mu   sync.Mutex
	ctrl *sdl.GameController
}

// Open initializes the SDL game controller subsystem and attaches to the
// first connected controller, if any. A source with no controller is still
// valid; Poll reports not-connected until one appears.
func Open() (*SDLSource, error) {
	if err := sdl.InitSubSystem(sdl.INIT_GAMECONTROLLER); err != nil {
		return nil, fmt.Errorf("failed to init SDL game controller subsystem: %w", err)
	}

	s := &SDLSource{}
	s.attach()
	return s, nil
}

// attach picks the first connected game controller. Caller holds no lock.
func (s *SDLSource) attach() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl != nil {
		return
	}
	for i := 0; i < sdl.NumJoysticks(); i++ {
		if !sdl.IsGameController(i) {
			continue
		}
		ctrl := sdl.GameControllerOpen(i)
		if ctrl == nil {
			continue
		}
		log.Printf("🎮 Physical controller attached: %s", ctrl.Name())
		s.ctrl = ctrl
		return
	}
}

// Connected reports whether a physical controller is currently attached.
func (s *SDLSource) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl != nil && s.ctrl.Attached()
}

// Poll reads a full snapshot of the controller's buttons, sticks and
// triggers. Axes are normalized to [-1, 1], triggers to [0, 1].
func (s *SDLSource) Poll() (models.ControllerState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sdl.GameControllerUpdate()

	if s.ctrl == nil || !s.ctrl.Attached() {
		if s.ctrl != nil {
			log.Println("⚠️ Physical controller detached")
			s.ctrl.Close()
			s.ctrl = nil
		}
		return models.ControllerState{}, false
	}

	btn := func(b sdl.GameControllerButton) bool {
		return s.ctrl.Button(b) == sdl.PRESSED
	}
	axis := func(a sdl.GameControllerAxis) float64 {
		v := float64(s.ctrl.Axis(a)) / 32767.0
		if v < -1 {
			v = -1
		}
		return v
	}
	trigger := func(a sdl.GameControllerAxis) float64 {
		// SDL reports triggers as 0..32767
		v := float64(s.ctrl.Axis(a)) / 32767.0
		if v < 0 {
			v = 0
		}
		return v
	}

	snap := models.ControllerState{
		A:             btn(sdl.CONTROLLER_BUTTON_A),
		B:             btn(sdl.CONTROLLER_BUTTON_B),
		X:             btn(sdl.CONTROLLER_BUTTON_X),
		Y:             btn(sdl.CONTROLLER_BUTTON_Y),
		LeftShoulder:  btn(sdl.CONTROLLER_BUTTON_LEFTSHOULDER),
		RightShoulder: btn(sdl.CONTROLLER_BUTTON_RIGHTSHOULDER),
		View:          btn(sdl.CONTROLLER_BUTTON_BACK),
		Menu:          btn(sdl.CONTROLLER_BUTTON_START),
		DpadUp:        btn(sdl.CONTROLLER_BUTTON_DPAD_UP),
		DpadDown:      btn(sdl.CONTROLLER_BUTTON_DPAD_DOWN),
		DpadLeft:      btn(sdl.CONTROLLER_BUTTON_DPAD_LEFT),
		DpadRight:     btn(sdl.CONTROLLER_BUTTON_DPAD_RIGHT),

		LeftStickX:  axis(sdl.CONTROLLER_AXIS_LEFTX),
		LeftStickY:  axis(sdl.CONTROLLER_AXIS_LEFTY),
		RightStickX: axis(sdl.CONTROLLER_AXIS_RIGHTX),
		RightStickY: axis(sdl.CONTROLLER_AXIS_RIGHTY),

		LeftTrigger:  trigger(sdl.CONTROLLER_AXIS_TRIGGERLEFT),
		RightTrigger: trigger(sdl.CONTROLLER_AXIS_TRIGGERRIGHT),
	}
	return snap, true
}

// Close releases the controller and the SDL subsystem.
func (s *SDLSource) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl != nil {
		s.ctrl.Close()
		s.ctrl = nil
	}
	sdl.QuitSubSystem(sdl.INIT_GAMECONTROLLER)
}

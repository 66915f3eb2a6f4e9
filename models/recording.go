package models

import "time"

// ControllerState is a full snapshot of a controller's inputs. Stick axes are
// normalized to [-1.0, 1.0], triggers to [0.0, 1.0]. The struct is comparable
// so delta detection is a plain != between snapshots.
type ControllerState struct {
	A             bool `json:"A"`
	B             bool `json:"B"`
	X             bool `json:"X"`
	Y             bool `json:"Y"`
	LeftShoulder  bool `json:"LeftShoulder"`
	RightShoulder bool `json:"RightShoulder"`
	View          bool `json:"View"`
	Menu          bool `json:"Menu"`
	DpadUp        bool `json:"DpadUp"`
	DpadDown      bool `json:"DpadDown"`
	DpadLeft      bool `json:"DpadLeft"`
	DpadRight     bool `json:"DpadRight"`

	LeftStickX  float64 `json:"LeftStickX"`
	LeftStickY  float64 `json:"LeftStickY"`
	RightStickX float64 `json:"RightStickX"`
	RightStickY float64 `json:"RightStickY"`

	LeftTrigger  float64 `json:"LeftTrigger"`
	RightTrigger float64 `json:"RightTrigger"`
}

// Button returns the state of a button by its lower-case name. Unknown names
// return false.
func (s ControllerState) Button(name string) bool {
	switch name {
	case "a":
		return s.A
	case "b":
		return s.B
	case "x":
		return s.X
	case "y":
		return s.Y
	case "leftshoulder":
		return s.LeftShoulder
	case "rightshoulder":
		return s.RightShoulder
	case "view":
		return s.View
	case "menu":
		return s.Menu
	case "dpadup":
		return s.DpadUp
	case "dpaddown":
		return s.DpadDown
	case "dpadleft":
		return s.DpadLeft
	case "dpadright":
		return s.DpadRight
	}
	return false
}

// InputEvent is one timestamped state change inside a recording.
// TimestampMs is milliseconds since the recording started and is
// non-decreasing within a recording.
type InputEvent struct {
	TimestampMs int64 `json:"TimestampMs"`
	ControllerState
}

// Recording is a named sequence of input events. Events are ordered by
// timestamp and the name is unique across all recordings.
type Recording struct {
	ID          int64        `json:"-"`
	Name        string       `json:"Name"`
	Description string       `json:"Description"`
	CreatedAt   time.Time    `json:"CreatedAt"`
	Events      []InputEvent `json:"Events,omitempty"`
}

// DurationMs is the timestamp of the last event, or 0 for an empty recording.
func (r *Recording) DurationMs() int64 {
	if len(r.Events) == 0 {
		return 0
	}
	return r.Events[len(r.Events)-1].TimestampMs
}

// RecordingMeta is the listing view of a recording (no events).
type RecordingMeta struct {
	Name        string    `json:"Name"`
	Description string    `json:"Description"`
	DurationMs  int64     `json:"DurationMs"`
	EventCount  int       `json:"EventCount"`
	CreatedAt   time.Time `json:"CreatedAt"`
}

package pad

import "sync"

// Driver is the capability that owns the OS-level virtual gamepad. SendFrame
// is the only call with an externally observable effect.
type Driver interface {
	SendFrame(FrameReport) error
	Connected() bool
	Close() error
}

// Device owns the single staged frame state for one virtual gamepad and the
// mutex that serializes every mutate+submit pair against it. The scheduling
// engine, live executor and player all go through Apply, so no two of them
// can interleave partial mutations into one submitted frame.
type Device struct {
	mu     sync.Mutex
	state  State
	driver Driver
}

// NewDevice creates a device around the given driver.
func NewDevice(driver Driver) *Device {
	return &Device{driver: driver}
}

// Apply runs mutate against the staged state and submits the result as one
// frame. The lock is held for the mutate+submit pair only, never across any
// surrounding wait.
func (d *Device) Apply(mutate func(*State)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	mutate(&d.state)
	return d.driver.SendFrame(d.state.Report())
}

// Reset zeroes every button, stick and trigger in one submission. Used as the
// safety reset after playback and cancellation.
func (d *Device) Reset() error {
	return d.Apply(func(s *State) {
		s.Zero()
	})
}

// Connected reports whether the underlying driver is usable.
func (d *Device) Connected() bool {
	return d.driver.Connected()
}

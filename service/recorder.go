package service

import (
	"fmt"
	"log"
	"sync"
	"time"

	"padcontrol/gamepad"
	"padcontrol/models"
)

// Recorder captures physical controller input into a named recording. One
// session at a time: Idle -> Recording -> Idle, where the Recording state
// ends either by an explicit End call or by the physical stop button.
type Recorder struct {
	store        *RecordingStore
	source       gamepad.Source
	hub          Broadcaster
	pollInterval time.Duration
	stopButton   string

	mu        sync.Mutex
	recording bool
	stopping  bool
	rec       *models.Recording
	stop      chan struct{}
	done      chan struct{}
}

// NewRecorder creates a recorder polling source at pollInterval. stopButton
// is the lower-case name of the physical button that ends a session ("view"
// in the default setup).
func NewRecorder(store *RecordingStore, source gamepad.Source, hub Broadcaster, pollInterval time.Duration, stopButton string) *Recorder {
	return &Recorder{
		store:        store,
		source:       source,
		hub:          hub,
		pollInterval: pollInterval,
		stopButton:   stopButton,
	}
}

// Recording reports whether a session is active.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Start begins a new recording session. Fails if a session is active, the
// name is empty or taken, or no physical controller is connected. No session
// state is created on failure.
func (r *Recorder) Start(name, description string) error {
	if name == "" {
		return fmt.Errorf("%w: recording name must not be empty", ErrInvalidRequest)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return fmt.Errorf("%w: a recording is already in progress", ErrConflictingState)
	}
	if !r.source.Connected() {
		return fmt.Errorf("%w: no physical controller connected", ErrDeviceUnavailable)
	}

	rec := &models.Recording{
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := r.store.Create(rec); err != nil {
		return err
	}

	r.rec = rec
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	r.recording = true
	r.stopping = false

	go r.loop(rec, r.stop, r.done)

	log.Printf("⏺️ Recording '%s' started", name)
	r.hub.Broadcast("recorder", map[string]interface{}{
		"type": "recording_started",
		"name": name,
	})
	return nil
}

// loop polls the physical controller at the fixed cadence, appending an
// event whenever the snapshot differs from the last recorded one. A
// released-to-pressed edge on the stop button ends the session autonomously.
func (r *Recorder) loop(rec *models.Recording, stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	start := time.Now()
	var last models.ControllerState
	haveLast := false
	prevStop := false
	firstPoll := true
	stoppedByButton := false

poll:
	for {
		select {
		case <-stop:
			break poll
		case <-ticker.C:
		}

		snap, ok := r.source.Poll()
		if !ok {
			continue
		}

		// the stop trigger is an edge, so a button already held when
		// the session starts does not end it
		pressed := snap.Button(r.stopButton)
		if pressed && !prevStop && !firstPoll {
			stoppedByButton = true
			break poll
		}
		prevStop = pressed
		firstPoll = false

		// delta compression: identical consecutive snapshots are
		// never re-recorded
		if haveLast && snap == last {
			continue
		}

		ev := models.InputEvent{
			TimestampMs:     time.Since(start).Milliseconds(),
			ControllerState: snap,
		}
		if err := r.store.AppendEvent(rec.ID, ev); err != nil {
			log.Printf("Failed to persist input event: %v", err)
			continue
		}
		rec.Events = append(rec.Events, ev)
		last = snap
		haveLast = true

		r.hub.Broadcast("recorder", map[string]interface{}{
			"type":        "recording_progress",
			"name":        rec.Name,
			"event_count": len(rec.Events),
		})
	}

	if !stoppedByButton {
		return
	}

	// the stop button ended the loop; seal the session here unless an
	// explicit End is already doing it
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopping || !r.recording {
		return
	}
	r.recording = false
	r.rec = nil
	log.Printf("⏹️ Recording '%s' stopped by controller (%d events)", rec.Name, len(rec.Events))
	r.hub.Broadcast("recorder", map[string]interface{}{
		"type":        "recording_stopped",
		"name":        rec.Name,
		"event_count": len(rec.Events),
	})
}

// End stops the active session, waits for the polling loop to finish and
// returns the sealed recording.
func (r *Recorder) End() (*models.Recording, error) {
	r.mu.Lock()
	if !r.recording || r.stopping {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: no recording in progress", ErrConflictingState)
	}
	r.stopping = true
	rec := r.rec
	stop, done := r.stop, r.done
	r.mu.Unlock()

	close(stop)
	<-done

	r.mu.Lock()
	r.recording = false
	r.stopping = false
	r.rec = nil
	r.mu.Unlock()

	log.Printf("⏹️ Recording '%s' stopped (%d events)", rec.Name, len(rec.Events))
	r.hub.Broadcast("recorder", map[string]interface{}{
		"type":        "recording_stopped",
		"name":        rec.Name,
		"event_count": len(rec.Events),
	})
	return rec, nil
}

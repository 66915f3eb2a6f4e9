package service

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"padcontrol/models"
	"padcontrol/pad"
)

// fakeDriver records every submitted frame.
type fakeDriver struct {
	mu     sync.Mutex
	frames []pad.FrameReport
}

func (d *fakeDriver) SendFrame(r pad.FrameReport) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames = append(d.frames, r)
	return nil
}

func (d *fakeDriver) Connected() bool { return true }
func (d *fakeDriver) Close() error    { return nil }

func (d *fakeDriver) Frames() []pad.FrameReport {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]pad.FrameReport, len(d.frames))
	copy(out, d.frames)
	return out
}

func (d *fakeDriver) LastFrame() pad.FrameReport {
	frames := d.Frames()
	if len(frames) == 0 {
		return pad.FrameReport{}
	}
	return frames[len(frames)-1]
}

// fakeDelay returns immediately, recording each requested duration.
type fakeDelay struct {
	mu       sync.Mutex
	requests []time.Duration
}

func (d *fakeDelay) Delay(ctx context.Context, dur time.Duration) error {
	d.mu.Lock()
	d.requests = append(d.requests, dur)
	d.mu.Unlock()
	return ctx.Err()
}

func (d *fakeDelay) Requests() []time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]time.Duration, len(d.requests))
	copy(out, d.requests)
	return out
}

// fakeSource replays a scripted sequence of snapshots; the last snapshot is
// sticky once the script runs out.
type fakeSource struct {
	mu        sync.Mutex
	script    []models.ControllerState
	connected bool
}

func (s *fakeSource) Poll() (models.ControllerState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return models.ControllerState{}, false
	}
	if len(s.script) == 0 {
		return models.ControllerState{}, true
	}
	snap := s.script[0]
	if len(s.script) > 1 {
		s.script = s.script[1:]
	}
	return snap, true
}

func (s *fakeSource) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *fakeSource) Close() {}

// newTestStore opens an in-memory sqlite database with the real schema.
func newTestStore(t *testing.T) *RecordingStore {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	// every pool connection would get its own empty in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../scripts/migrations.sql")
	if err != nil {
		t.Fatalf("failed to read schema: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	return NewRecordingStore(db)
}

package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"padcontrol/models"
)

// RecordingStore persists recordings and their event streams in SQLite. It
// enforces name uniqueness and returns events ordered by timestamp.
type RecordingStore struct {
	db *sql.DB
}

func NewRecordingStore(db *sql.DB) *RecordingStore {
	return &RecordingStore{db: db}
}

// Create inserts a new empty recording. A duplicate name is reported as
// ErrConflictingState.
func (s *RecordingStore) Create(rec *models.Recording) error {
	res, err := s.db.Exec(
		`INSERT INTO recordings (name, description, created_at) VALUES (?, ?, ?)`,
		rec.Name, rec.Description, rec.CreatedAt.Unix(),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: recording %q already exists", ErrConflictingState, rec.Name)
		}
		return fmt.Errorf("failed to create recording: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read recording id: %w", err)
	}
	rec.ID = id
	return nil
}

// AppendEvent appends one input event to an active recording.
func (s *RecordingStore) AppendEvent(recordingID int64, ev models.InputEvent) error {
	_, err := s.db.Exec(
		`INSERT INTO recording_events (
			recording_id, timestamp_ms,
			a, b, x, y, left_shoulder, right_shoulder, view, menu,
			dpad_up, dpad_down, dpad_left, dpad_right,
			left_stick_x, left_stick_y, right_stick_x, right_stick_y,
			left_trigger, right_trigger
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recordingID, ev.TimestampMs,
		ev.A, ev.B, ev.X, ev.Y, ev.LeftShoulder, ev.RightShoulder, ev.View, ev.Menu,
		ev.DpadUp, ev.DpadDown, ev.DpadLeft, ev.DpadRight,
		ev.LeftStickX, ev.LeftStickY, ev.RightStickX, ev.RightStickY,
		ev.LeftTrigger, ev.RightTrigger,
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// GetByName returns a recording with its events in timestamp order, or nil
// if no recording has that name.
func (s *RecordingStore) GetByName(name string) (*models.Recording, error) {
	rec := &models.Recording{}
	var createdAt int64
	err := s.db.QueryRow(
		`SELECT id, name, description, created_at FROM recordings WHERE name = ?`,
		name,
	).Scan(&rec.ID, &rec.Name, &rec.Description, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recording: %w", err)
	}
	rec.CreatedAt = time.Unix(createdAt, 0)

	rows, err := s.db.Query(
		`SELECT timestamp_ms,
			a, b, x, y, left_shoulder, right_shoulder, view, menu,
			dpad_up, dpad_down, dpad_left, dpad_right,
			left_stick_x, left_stick_y, right_stick_x, right_stick_y,
			left_trigger, right_trigger
		FROM recording_events WHERE recording_id = ? ORDER BY timestamp_ms, id`,
		rec.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ev models.InputEvent
		if err := rows.Scan(
			&ev.TimestampMs,
			&ev.A, &ev.B, &ev.X, &ev.Y, &ev.LeftShoulder, &ev.RightShoulder, &ev.View, &ev.Menu,
			&ev.DpadUp, &ev.DpadDown, &ev.DpadLeft, &ev.DpadRight,
			&ev.LeftStickX, &ev.LeftStickY, &ev.RightStickX, &ev.RightStickY,
			&ev.LeftTrigger, &ev.RightTrigger,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		rec.Events = append(rec.Events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	return rec, nil
}

// List returns metadata for all recordings, newest first.
func (s *RecordingStore) List() ([]models.RecordingMeta, error) {
	rows, err := s.db.Query(
		`SELECT r.name, r.description, r.created_at,
			COUNT(e.id), COALESCE(MAX(e.timestamp_ms), 0)
		FROM recordings r
		LEFT JOIN recording_events e ON e.recording_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC, r.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recordings: %w", err)
	}
	defer rows.Close()

	metas := make([]models.RecordingMeta, 0)
	for rows.Next() {
		var m models.RecordingMeta
		var createdAt int64
		if err := rows.Scan(&m.Name, &m.Description, &createdAt, &m.EventCount, &m.DurationMs); err != nil {
			return nil, fmt.Errorf("failed to scan recording: %w", err)
		}
		m.CreatedAt = time.Unix(createdAt, 0)
		metas = append(metas, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recordings: %w", err)
	}
	return metas, nil
}

// Delete removes a recording and its events. Returns false if no recording
// had that name.
func (s *RecordingStore) Delete(name string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM recordings WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete recording: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return n > 0, nil
}

package service

import (
	"testing"
	"time"

	"padcontrol/models"
)

func TestRecordingStore(t *testing.T) {
	t.Run("name uniqueness", func(t *testing.T) {
		store := newTestStore(t)

		if err := store.Create(&models.Recording{Name: "combo", CreatedAt: time.Now()}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		err := store.Create(&models.Recording{Name: "combo", CreatedAt: time.Now()})
		if !IsConflict(err) {
			t.Fatalf("got %v, want ErrConflictingState", err)
		}
	})

	t.Run("events come back in timestamp order", func(t *testing.T) {
		store := newTestStore(t)
		rec := &models.Recording{Name: "ordered", CreatedAt: time.Now()}
		if err := store.Create(rec); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		for _, ts := range []int64{0, 16, 48, 48, 96} {
			if err := store.AppendEvent(rec.ID, models.InputEvent{TimestampMs: ts}); err != nil {
				t.Fatalf("AppendEvent failed: %v", err)
			}
		}

		got, err := store.GetByName("ordered")
		if err != nil {
			t.Fatalf("GetByName failed: %v", err)
		}
		if len(got.Events) != 5 {
			t.Fatalf("got %d events, want 5", len(got.Events))
		}
		for i := 1; i < len(got.Events); i++ {
			if got.Events[i].TimestampMs < got.Events[i-1].TimestampMs {
				t.Errorf("timestamps decrease at event %d", i)
			}
		}
		if got.DurationMs() != 96 {
			t.Errorf("duration = %d, want 96", got.DurationMs())
		}
	})

	t.Run("missing name returns nil", func(t *testing.T) {
		store := newTestStore(t)
		got, err := store.GetByName("ghost")
		if err != nil {
			t.Fatalf("GetByName failed: %v", err)
		}
		if got != nil {
			t.Errorf("got %+v, want nil", got)
		}
	})

	t.Run("list is newest first with counts", func(t *testing.T) {
		store := newTestStore(t)

		older := &models.Recording{Name: "older", CreatedAt: time.Now().Add(-time.Hour)}
		newer := &models.Recording{Name: "newer", CreatedAt: time.Now()}
		for _, rec := range []*models.Recording{older, newer} {
			if err := store.Create(rec); err != nil {
				t.Fatalf("Create failed: %v", err)
			}
		}
		store.AppendEvent(older.ID, models.InputEvent{TimestampMs: 0})
		store.AppendEvent(older.ID, models.InputEvent{TimestampMs: 200})

		metas, err := store.List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(metas) != 2 {
			t.Fatalf("got %d recordings, want 2", len(metas))
		}
		if metas[0].Name != "newer" || metas[1].Name != "older" {
			t.Errorf("order = [%s, %s], want [newer, older]", metas[0].Name, metas[1].Name)
		}
		if metas[1].EventCount != 2 || metas[1].DurationMs != 200 {
			t.Errorf("older meta = %+v, want 2 events over 200ms", metas[1])
		}
	})

	t.Run("delete removes recording and events", func(t *testing.T) {
		store := newTestStore(t)
		rec := &models.Recording{Name: "doomed", CreatedAt: time.Now()}
		if err := store.Create(rec); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		store.AppendEvent(rec.ID, models.InputEvent{TimestampMs: 0})

		deleted, err := store.Delete("doomed")
		if err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if !deleted {
			t.Fatal("Delete returned false")
		}
		if got, _ := store.GetByName("doomed"); got != nil {
			t.Error("recording still present after delete")
		}

		deleted, err = store.Delete("doomed")
		if err != nil {
			t.Fatalf("second Delete failed: %v", err)
		}
		if deleted {
			t.Error("second delete reported success")
		}
	})
}

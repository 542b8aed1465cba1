package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"cardlab/internal/card"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(t *testing.T, extendedID string, createdAt time.Time) *card.GenerationRecord {
	t.Helper()
	rec := card.NewGenerationRecord("#1700FE", "Test Card")
	if err := rec.Adopt(42, extendedID); err != nil {
		t.Fatalf("adopt: %v", err)
	}
	rec.Status = card.StatusFinalized
	rec.Assets.FrontHorizontal = "h.png"
	rec.CreatedAt = createdAt
	return rec
}

func TestSaveAndFind(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := testRecord(t, "000000042 FE F", time.Now().UTC())
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entry, err := store.FindByExtendedID(ctx, "000000042 FE F")
	if err != nil {
		t.Fatalf("FindByExtendedID: %v", err)
	}
	if entry.RemoteID != 42 || entry.ColorValue != "#1700FE" || entry.DisplayName != "Test Card" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Status != card.StatusFinalized || entry.Assets.FrontHorizontal != "h.png" {
		t.Errorf("entry = %+v", entry)
	}
}

func TestFindMissingCard(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.FindByExtendedID(context.Background(), "000000999 00 F"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveUpsertsByLocalID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := testRecord(t, "000000042 FE F", time.Now().UTC())
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("first save: %v", err)
	}

	// The annotate phase saves the same record again with more state.
	rec.Status = card.StatusAnnotated
	rec.Assets.BackHorizontal = "bh.png"
	rec.NoteText = "Hello"
	rec.HasNote = true
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("second save: %v", err)
	}

	entries, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one row after upsert, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Status != card.StatusAnnotated || entry.Assets.BackHorizontal != "bh.png" || !entry.HasNote {
		t.Errorf("upsert did not advance the row: %+v", entry)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		rec := testRecord(t, "000000042 FE F", base.Add(time.Duration(i)*time.Hour))
		rec.DisplayName = []string{"oldest", "middle", "newest"}[i]
		if err := store.Save(ctx, rec); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	entries, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("limit not applied, got %d rows", len(entries))
	}
	if entries[0].DisplayName != "newest" || entries[1].DisplayName != "middle" {
		t.Errorf("order = %q, %q", entries[0].DisplayName, entries[1].DisplayName)
	}
}

package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"listinha/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "listinha.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testSnapshot(t *testing.T) core.Snapshot {
	t.Helper()
	l := core.NewList("l1", "Mercado")
	if err := l.SetBudget(core.Money{Cents: 80000}); err != nil {
		t.Fatalf("SetBudget: %v", err)
	}
	if _, err := l.AddItem("Leite Integral", 2, core.Money{Cents: 450}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := l.AddItem("Banana Prata", 6, core.Money{Cents: 90}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	old := core.NewList("l0", "Mercado")
	old.AddItem("Arroz", 1, core.Money{Cents: 2500})
	rec, _, err := old.Finalize("unused")
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	return core.Snapshot{
		List:     l,
		History:  []core.HistoryRecord{rec},
		Settings: core.DefaultSettings(),
	}
}

func TestLoadEmptyDatabase(t *testing.T) {
	s := newTestStore(t)
	_, ok, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatal("fresh database must report no snapshot")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	snap := testSnapshot(t)

	if err := s.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("expected a snapshot")
	}
	if got.List.ID != "l1" || got.List.Status != core.StatusActive {
		t.Fatalf("active list = %+v", got.List)
	}
	if got.List.TotalCents != snap.List.TotalCents || got.List.Seq != snap.List.Seq {
		t.Fatalf("restored totals: got %d/%d, want %d/%d",
			got.List.TotalCents, got.List.Seq, snap.List.TotalCents, snap.List.Seq)
	}
	if len(got.List.Items) != 2 || got.List.Items[0].Name != "Banana Prata" {
		t.Fatalf("restored item order = %+v", got.List.Items)
	}
	if got.List.Items[0].Category != core.CategoryHortifruti {
		t.Fatalf("restored category = %q", got.List.Items[0].Category)
	}
	if len(got.History) != 1 || got.History[0].List.ID != "l0" {
		t.Fatalf("restored history = %+v", got.History)
	}
	if got.History[0].List.Status != core.StatusFinalized {
		t.Fatalf("history status = %q", got.History[0].List.Status)
	}
	if got.Settings.HistoryLimit != 3 || len(got.Settings.Thresholds) != 3 {
		t.Fatalf("restored settings = %+v", got.Settings)
	}
}

func TestSaveReplacesPreviousState(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	snap := testSnapshot(t)

	if err := s.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Mutate and save again: the old rows must be gone.
	if _, err := snap.List.RemoveItem(snap.List.Items[0].ID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if err := s.Save(ctx, snap); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, ok, err := s.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if len(got.List.Items) != 1 {
		t.Fatalf("items after replace = %+v", got.List.Items)
	}
	if got.List.TotalCents != snap.List.TotalCents {
		t.Fatalf("total = %d, want %d", got.List.TotalCents, snap.List.TotalCents)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "listinha.db")

	s1, err := New(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s1.Save(context.Background(), testSnapshot(t)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s1.Close()

	// Reopening runs migrations again over an up-to-date schema.
	s2, err := New(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	_, ok, err := s2.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("Load after reopen: ok=%v err=%v", ok, err)
	}
}

package memory

import (
	"context"
	"testing"

	"listinha/internal/core"
)

func TestLoadBeforeSave(t *testing.T) {
	s := New()
	_, ok, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatal("empty store must report no snapshot")
	}
}

func TestSaveIsolatesState(t *testing.T) {
	s := New()
	ctx := context.Background()

	l := core.NewList("l1", "")
	l.AddItem("Leite", 1, core.Money{Cents: 450})
	if err := s.Save(ctx, core.Snapshot{List: l, Settings: core.DefaultSettings()}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Mutating the live list must not affect what was saved.
	l.AddItem("Pão", 1, core.Money{Cents: 80})

	got, ok, err := s.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if len(got.List.Items) != 1 {
		t.Fatalf("stored snapshot leaked live mutations: %+v", got.List.Items)
	}
}

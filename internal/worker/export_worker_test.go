package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"listinha/internal/amqp"
	"listinha/internal/core"
	"listinha/internal/store/memory"
)

func finalizedSnapshot(t *testing.T) (core.Snapshot, core.HistoryRecord) {
	t.Helper()
	l := core.NewList("list-1", "Minha Lista")
	if _, err := l.AddItem("Leite", 2, core.Money{Cents: 450}); err != nil {
		t.Fatal(err)
	}
	rec, fresh, err := l.Finalize("list-2")
	if err != nil {
		t.Fatal(err)
	}
	return core.Snapshot{
		List:     fresh,
		History:  []core.HistoryRecord{rec},
		Settings: core.DefaultSettings(),
	}, rec
}

type recordingArchive struct {
	appended []core.HistoryRecord
	fail     bool
}

func (a *recordingArchive) Append(ctx context.Context, rec core.HistoryRecord) (string, error) {
	if a.fail {
		return "", errors.New("spreadsheet unreachable")
	}
	a.appended = append(a.appended, rec)
	return "Listas!A1:F3", nil
}

func TestHandleFinalizedWritesFileAndArchives(t *testing.T) {
	st := memory.New()
	snap, rec := finalizedSnapshot(t)
	if err := st.Save(context.Background(), snap); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	archive := &recordingArchive{}
	w := NewExportWorker(st, archive, dir)

	msg := amqp.NewListFinalizedMessage(rec.List.ID, rec.List.Name,
		len(rec.List.Items), rec.List.TotalCents, rec.FinalizedAt)
	if err := w.HandleFinalized(context.Background(), msg); err != nil {
		t.Fatalf("HandleFinalized: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("export files = %d, want 1", len(entries))
	}
	blob, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(blob), "Total: R$ 9.00") {
		t.Errorf("export content:\n%s", blob)
	}

	if len(archive.appended) != 1 || archive.appended[0].List.ID != "list-1" {
		t.Errorf("archive appends = %+v", archive.appended)
	}
}

func TestHandleFinalizedArchiveFailureRequeues(t *testing.T) {
	st := memory.New()
	snap, rec := finalizedSnapshot(t)
	if err := st.Save(context.Background(), snap); err != nil {
		t.Fatal(err)
	}

	w := NewExportWorker(st, &recordingArchive{fail: true}, t.TempDir())
	msg := amqp.NewListFinalizedMessage(rec.List.ID, rec.List.Name,
		len(rec.List.Items), rec.List.TotalCents, rec.FinalizedAt)
	if err := w.HandleFinalized(context.Background(), msg); err == nil {
		t.Fatal("archive failure must surface so the delivery is requeued")
	}
}

func TestHandleFinalizedUnknownListDropped(t *testing.T) {
	st := memory.New()
	snap, _ := finalizedSnapshot(t)
	if err := st.Save(context.Background(), snap); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	w := NewExportWorker(st, nil, dir)
	msg := amqp.NewListFinalizedMessage("gone", "Velha", 0, 0, snap.History[0].FinalizedAt)
	if err := w.HandleFinalized(context.Background(), msg); err != nil {
		t.Fatalf("trimmed record must be dropped, not requeued: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("no file expected, found %d", len(entries))
	}
}

func TestHandleFinalizedEmptyStoreRequeues(t *testing.T) {
	w := NewExportWorker(memory.New(), nil, t.TempDir())
	msg := amqp.NewListFinalizedMessage("list-1", "Minha Lista", 0, 0, time.Now())
	if err := w.HandleFinalized(context.Background(), msg); err == nil {
		t.Fatal("missing snapshot must requeue")
	}
}

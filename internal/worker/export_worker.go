package worker

import (
	"context"
	"errors"
	"fmt"

	"listinha/internal/amqp"
	"listinha/internal/core"
	"listinha/internal/export"
	applog "listinha/internal/log"
	"listinha/internal/store"
)

// ExportWorker archives finalized lists announced over AMQP. The message
// only carries the list ID and totals; the full record is read back from the
// shared store, written as a text file, and optionally appended to a
// spreadsheet.
type ExportWorker struct {
	store     store.Store
	archive   export.ArchiveWriter // optional
	exportDir string
	logger    *applog.Logger
}

func NewExportWorker(st store.Store, archive export.ArchiveWriter, exportDir string) *ExportWorker {
	return &ExportWorker{
		store:     st,
		archive:   archive,
		exportDir: exportDir,
		logger:    applog.New(applog.ComponentExport),
	}
}

// HandleFinalized processes one ListFinalizedMessage. Returning an error
// requeues the delivery, so the record lookup tolerates the store lagging
// behind the message.
func (w *ExportWorker) HandleFinalized(ctx context.Context, msg *amqp.ListFinalizedMessage) error {
	snap, found, err := w.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		return errors.New("no snapshot persisted yet")
	}

	rec, ok := findRecord(snap.History, msg.ListID)
	if !ok {
		// Trimmed out of the bounded history before we got the message.
		// Nothing left to archive; drop the delivery.
		w.logger.WarnContext(ctx, "Finalized list no longer in history",
			applog.FieldListID, msg.ListID)
		return nil
	}

	path, err := export.WriteRecord(w.exportDir, rec)
	if err != nil {
		return fmt.Errorf("export record %s: %w", msg.ListID, err)
	}
	w.logger.InfoContext(ctx, "Finalized list exported",
		applog.FieldListID, msg.ListID, "path", path, "total_cents", rec.List.TotalCents)

	if w.archive != nil {
		ref, err := w.archive.Append(ctx, rec)
		if err != nil {
			return fmt.Errorf("archive record %s: %w", msg.ListID, err)
		}
		w.logger.InfoContext(ctx, "Finalized list archived",
			applog.FieldListID, msg.ListID, "row_ref", ref)
	}
	return nil
}

func findRecord(history []core.HistoryRecord, listID string) (core.HistoryRecord, bool) {
	for _, rec := range history {
		if rec.List.ID == listID {
			return rec, true
		}
	}
	return core.HistoryRecord{}, false
}

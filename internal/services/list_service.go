// Package services wires the list engine to persistence and messaging.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"listinha/internal/amqp"
	"listinha/internal/core"
	"listinha/internal/store"
)

// ListService owns the engine state: the active list, the bounded history
// and the settings. All mutations go through its mutex, giving the single
// serializing authority the engine assumes, and every successful mutation
// is persisted as a full snapshot before the call returns.
type ListService struct {
	mu         sync.Mutex
	store      store.Store
	amqpClient *amqp.Client

	list     *core.List
	history  []core.HistoryRecord
	settings core.Settings
	alerts   *core.AlertTracker
}

// Summary is the derived read-only view the presentation layer renders.
type Summary struct {
	ListID       string       `json:"list_id"`
	Name         string       `json:"name"`
	Items        int          `json:"items"`
	Total        core.Money   `json:"total"`
	Budget       core.Money   `json:"budget"`
	Remaining    core.Money   `json:"remaining"`
	SpentPercent *float64     `json:"spent_percent"` // nil when no budget is set
	Alerts       []core.Alert `json:"alerts"`
}

// NewListService restores state from the store, or starts a fresh list when
// nothing was persisted yet. The AMQP client is optional; without it,
// finalization events are simply not published.
func NewListService(ctx context.Context, st store.Store, amqpClient *amqp.Client, listName string, settings core.Settings) (*ListService, error) {
	s := &ListService{
		store:      st,
		amqpClient: amqpClient,
		settings:   settings,
		alerts:     core.NewAlertTracker(),
	}

	snap, ok, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if ok {
		s.list = snap.List
		s.history = snap.History
		s.settings = snap.Settings
		slog.InfoContext(ctx, "Restored list state",
			"list_id", s.list.ID,
			"items", len(s.list.Items),
			"history", len(s.history))
	} else {
		s.list = core.NewList(uuid.NewString(), listName)
		if err := s.persist(ctx); err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "Started fresh list", "list_id", s.list.ID)
	}

	return s, nil
}

// AddItem validates and appends an item, persists the snapshot and returns
// the created item together with any newly crossed budget alerts. A failed
// save rolls the mutation back, so a reported error never leaves the item
// on the list.
func (s *ListService) AddItem(ctx context.Context, name string, quantity int64, unitPrice core.Money) (core.Item, []core.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := cloneList(s.list)
	item, err := s.list.AddItem(name, quantity, unitPrice)
	if err != nil {
		return core.Item{}, nil, err
	}
	if err := s.persist(ctx); err != nil {
		s.list = prev
		return core.Item{}, nil, err
	}

	fresh := s.alerts.Surface(s.list.Alerts(s.settings.Thresholds))
	slog.InfoContext(ctx, "Item added",
		"list_id", s.list.ID,
		"item_id", item.ID,
		"item_name", item.Name,
		"category", string(item.Category),
		"quantity", item.Quantity,
		"amount_cents", item.LineTotal().Cents,
		"total_cents", s.list.TotalCents)
	return item, fresh, nil
}

// RemoveItem removes the item with the given ID and persists, restoring the
// item when the save fails.
func (s *ListService) RemoveItem(ctx context.Context, id int64) (core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := cloneList(s.list)
	item, err := s.list.RemoveItem(id)
	if err != nil {
		return core.Item{}, err
	}
	if err := s.persist(ctx); err != nil {
		s.list = prev
		return core.Item{}, err
	}

	slog.InfoContext(ctx, "Item removed",
		"list_id", s.list.ID,
		"item_id", item.ID,
		"total_cents", s.list.TotalCents)
	return item, nil
}

// UpdateBudget replaces the budget ceiling. Changing the budget moves every
// threshold, so previously surfaced alerts are forgotten.
func (s *ListService) UpdateBudget(ctx context.Context, budget core.Money) ([]core.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevBudget := s.list.Budget
	if err := s.list.SetBudget(budget); err != nil {
		return nil, err
	}
	if err := s.persist(ctx); err != nil {
		s.list.Budget = prevBudget
		return nil, err
	}

	s.alerts.Reset()
	fresh := s.alerts.Surface(s.list.Alerts(s.settings.Thresholds))
	slog.InfoContext(ctx, "Budget updated",
		"list_id", s.list.ID,
		"budget_cents", budget.Cents)
	return fresh, nil
}

// Finalize archives the active list into history, starts a fresh one and
// announces the event. Publishing is best effort: the archive is already
// durable, so a broker failure must not fail the call.
func (s *ListService) Finalize(ctx context.Context) (core.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevList := cloneList(s.list)
	prevHistory := s.history
	rec, fresh, err := s.list.Finalize(uuid.NewString())
	if err != nil {
		return core.HistoryRecord{}, err
	}
	s.list = fresh
	s.history = core.PushHistory(s.history, rec, s.settings.HistoryLimit)

	if err := s.persist(ctx); err != nil {
		s.list = prevList
		s.history = prevHistory
		return core.HistoryRecord{}, err
	}
	s.alerts.Reset()

	slog.InfoContext(ctx, "List finalized",
		"list_id", rec.List.ID,
		"items", len(rec.List.Items),
		"total_cents", rec.List.TotalCents,
		"new_list_id", s.list.ID)

	s.publishFinalized(ctx, rec)
	return rec, nil
}

func (s *ListService) publishFinalized(ctx context.Context, rec core.HistoryRecord) {
	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping finalized message")
		return
	}
	msg := amqp.NewListFinalizedMessage(
		rec.List.ID, rec.List.Name, len(rec.List.Items), rec.List.TotalCents, rec.FinalizedAt)
	if err := s.amqpClient.PublishListFinalized(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish finalized message",
			"list_id", rec.List.ID, "error", err)
	}
}

// cloneList deep-copies a list so a failed save can restore the
// pre-mutation state.
func cloneList(l *core.List) *core.List {
	cp := *l
	cp.Items = append([]core.Item(nil), l.Items...)
	return &cp
}

// persist writes the current snapshot; callers hold the mutex.
func (s *ListService) persist(ctx context.Context) error {
	snap := core.Snapshot{List: s.list, History: s.history, Settings: s.settings}
	if err := s.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// List returns a deep copy of the active list for read-only consumers.
func (s *ListService) List() core.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *s.list
	cp.Items = append([]core.Item(nil), s.list.Items...)
	return cp
}

// History returns the archived records, most recent first.
func (s *ListService) History() []core.HistoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.HistoryRecord(nil), s.history...)
}

// Groups projects the active list grouped by category, optionally filtered.
func (s *ListService) Groups(search string) []core.CategoryGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.GroupByCategory(s.list.Items, search)
}

// Summary derives the financial overview. Alerts here are the full met set,
// not deduplicated, so the view is stable across reloads.
func (s *ListService) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{
		ListID:    s.list.ID,
		Name:      s.list.Name,
		Items:     len(s.list.Items),
		Total:     s.list.Total(),
		Budget:    s.list.Budget,
		Remaining: s.list.Remaining(),
		Alerts:    s.list.Alerts(s.settings.Thresholds),
	}
	if pct, ok := s.list.SpentPercent(); ok {
		sum.SpentPercent = &pct
	}
	return sum
}

// Close releases the store and broker connections.
func (s *ListService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close list service: %v", errs)
	}
	return nil
}

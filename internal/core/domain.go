package core

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusActive    ListStatus = "active"
	StatusFinalized ListStatus = "finalized"
)

type (
	ListStatus string

	// Item is a single product entry. ID and CreatedAt are immutable once
	// assigned; the category is assigned by Classify at creation time.
	Item struct {
		ID        int64     `json:"id"`
		Name      string    `json:"name"`
		Quantity  int64     `json:"quantity"`
		UnitPrice Money     `json:"unit_price"`
		Category  Category  `json:"category"`
		CreatedAt time.Time `json:"created_at"`
	}

	// List is the active shopping list: an ordered item collection
	// (newest first) plus budget and status metadata. TotalCents is kept in
	// lockstep with the items; every mutation adjusts it by exactly the
	// line total involved so the running sum cannot drift.
	List struct {
		ID          string     `json:"id"`
		Name        string     `json:"name"`
		Items       []Item     `json:"items"`
		Budget      Money      `json:"budget"`
		TotalCents  int64      `json:"total_cents"`
		Status      ListStatus `json:"status"`
		Seq         int64      `json:"seq"`
		CreatedAt   time.Time  `json:"created_at"`
		FinalizedAt time.Time  `json:"finalized_at,omitzero"`
	}

	// HistoryRecord is an immutable snapshot of a finalized list.
	HistoryRecord struct {
		List        List      `json:"list"`
		FinalizedAt time.Time `json:"finalized_at"`
	}
)

var (
	ErrEmptyName       = errors.New("empty item name")
	ErrNameTooLong     = errors.New("item name too long (max 200 characters)")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidPrice    = errors.New("unit price must be positive")
	ErrNegativeBudget  = errors.New("budget cannot be negative")
	ErrItemNotFound    = errors.New("item not found")
	ErrListFinalized   = errors.New("list is finalized")
)

// NewList creates an empty active list. The caller supplies the identifier
// so the engine stays free of ID-generation concerns.
func NewList(id, name string) *List {
	return &List{
		ID:        id,
		Name:      name,
		Status:    StatusActive,
		CreatedAt: time.Now().UTC(),
	}
}

// LineTotal is the derived quantity × unit price amount.
func (it Item) LineTotal() Money {
	return it.UnitPrice.Mul(it.Quantity)
}

// Total returns the running sum of all line totals.
func (l *List) Total() Money {
	return Money{Cents: l.TotalCents}
}

// AddItem validates the input, classifies the name, assigns the next
// sequence ID and prepends the item (newest first, matching insertion order
// elsewhere in the engine). The running total grows by the item's line total.
func (l *List) AddItem(name string, quantity int64, unitPrice Money) (Item, error) {
	if l.Status != StatusActive {
		return Item{}, ErrListFinalized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, ErrEmptyName
	}
	if len(name) > 200 {
		return Item{}, ErrNameTooLong
	}
	if quantity < 1 {
		return Item{}, ErrInvalidQuantity
	}
	if unitPrice.Cents <= 0 {
		return Item{}, ErrInvalidPrice
	}

	l.Seq++
	item := Item{
		ID:        l.Seq,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Category:  Classify(name),
		CreatedAt: time.Now().UTC(),
	}
	l.Items = append([]Item{item}, l.Items...)
	l.TotalCents += item.LineTotal().Cents
	return item, nil
}

// RemoveItem deletes the item with the given ID and shrinks the running
// total by exactly that item's line total. Unknown IDs yield ErrItemNotFound;
// whether that is fatal is the caller's call.
func (l *List) RemoveItem(id int64) (Item, error) {
	if l.Status != StatusActive {
		return Item{}, ErrListFinalized
	}
	for i, it := range l.Items {
		if it.ID == id {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			l.TotalCents -= it.LineTotal().Cents
			return it, nil
		}
	}
	return Item{}, ErrItemNotFound
}

// SetBudget replaces the budget ceiling. Zero means "no budget set".
// Negative input is rejected rather than clamped.
func (l *List) SetBudget(m Money) error {
	if l.Status != StatusActive {
		return ErrListFinalized
	}
	if m.Cents < 0 {
		return ErrNegativeBudget
	}
	l.Budget = m
	return nil
}

// Finalize marks the list finalized, snapshots it into an immutable
// HistoryRecord and returns a fresh active list under newID. The new list
// starts with an empty item set and the budget reset to zero. Finalizing an
// empty list is allowed; guarding against it is a presentation decision.
func (l *List) Finalize(newID string) (HistoryRecord, *List, error) {
	if l.Status != StatusActive {
		return HistoryRecord{}, nil, ErrListFinalized
	}
	now := time.Now().UTC()
	l.Status = StatusFinalized
	l.FinalizedAt = now

	rec := HistoryRecord{List: l.clone(), FinalizedAt: now}
	return rec, NewList(newID, l.Name), nil
}

// PushHistory prepends rec and trims the collection to limit entries,
// discarding the oldest. A limit below 1 keeps no history at all.
func PushHistory(history []HistoryRecord, rec HistoryRecord, limit int) []HistoryRecord {
	history = append([]HistoryRecord{rec}, history...)
	if limit < 0 {
		limit = 0
	}
	if len(history) > limit {
		history = history[:limit]
	}
	return history
}

// clone deep-copies the list so history records cannot alias live state.
func (l *List) clone() List {
	cp := *l
	cp.Items = make([]Item, len(l.Items))
	copy(cp.Items, l.Items)
	return cp
}

// recomputeTotal sums line totals from scratch. Used when restoring
// snapshots to verify the stored running total.
func (l *List) recomputeTotal() int64 {
	var sum int64
	for _, it := range l.Items {
		sum += it.LineTotal().Cents
	}
	return sum
}

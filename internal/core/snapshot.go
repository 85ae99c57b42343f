package core

import (
	"encoding/json"
	"fmt"
)

// Settings is the user-tunable part of a snapshot.
type Settings struct {
	HistoryLimit int       `json:"history_limit"`
	Thresholds   []float64 `json:"thresholds"`
}

// DefaultSettings mirrors the stock configuration: three retained history
// entries and the default threshold ladder.
func DefaultSettings() Settings {
	return Settings{
		HistoryLimit: 3,
		Thresholds:   append([]float64(nil), DefaultThresholds...),
	}
}

// Snapshot is the serializable whole of the engine state: the active list,
// the bounded history and the settings.
type Snapshot struct {
	List     *List           `json:"list"`
	History  []HistoryRecord `json:"history"`
	Settings Settings        `json:"settings"`
}

// Encode renders the snapshot as an opaque blob for the persistence layer.
func (s Snapshot) Encode() ([]byte, error) {
	blob, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return blob, nil
}

// DecodeSnapshot parses a blob produced by Encode and verifies the restored
// state upholds the engine invariants before handing it back.
func DecodeSnapshot(blob []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(blob, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.List == nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: missing active list")
	}
	if err := s.validate(); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}

func (s Snapshot) validate() error {
	if err := validateList(s.List); err != nil {
		return err
	}
	for i := range s.History {
		rec := &s.History[i]
		if rec.List.Status != StatusFinalized {
			return fmt.Errorf("history entry %d: status %q, want finalized", i, rec.List.Status)
		}
		if err := validateList(&rec.List); err != nil {
			return fmt.Errorf("history entry %d: %w", i, err)
		}
	}
	if s.Settings.HistoryLimit < 0 {
		return fmt.Errorf("negative history limit %d", s.Settings.HistoryLimit)
	}
	return nil
}

func validateList(l *List) error {
	switch l.Status {
	case StatusActive, StatusFinalized:
	default:
		return fmt.Errorf("unknown list status %q", l.Status)
	}
	if l.Budget.Cents < 0 {
		return fmt.Errorf("negative budget %d", l.Budget.Cents)
	}
	for _, it := range l.Items {
		if !it.Category.Valid() {
			return fmt.Errorf("item %d: unknown category %q", it.ID, it.Category)
		}
		if it.Quantity < 1 || it.UnitPrice.Cents <= 0 {
			return fmt.Errorf("item %d: invalid quantity or price", it.ID)
		}
		if it.ID > l.Seq {
			return fmt.Errorf("item %d: id beyond sequence %d", it.ID, l.Seq)
		}
	}
	if got := l.recomputeTotal(); got != l.TotalCents {
		return fmt.Errorf("total drift: stored %d, computed %d", l.TotalCents, got)
	}
	return nil
}

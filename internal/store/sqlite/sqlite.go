// Package sqlite persists engine snapshots in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"listinha/internal/core"
	"listinha/internal/store"

	_ "modernc.org/sqlite" // pure Go driver, no CGO
)

var _ store.Store = (*Store)(nil)

type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and brings the schema up to
// date.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save replaces the whole persisted state inside one transaction. Snapshots
// are a handful of rows, so a full rewrite is both simple and atomic.
func (s *Store) Save(ctx context.Context, snap core.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM items", "DELETE FROM history", "DELETE FROM lists", "DELETE FROM settings",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear previous snapshot: %w", err)
		}
	}

	if err := insertList(ctx, tx, snap.List); err != nil {
		return err
	}
	for rank, rec := range snap.History {
		if err := insertList(ctx, tx, &rec.List); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO history (rank, list_id, finalized_at) VALUES (?, ?, ?)",
			rank, rec.List.ID, rec.FinalizedAt)
		if err != nil {
			return fmt.Errorf("insert history entry %d: %w", rank, err)
		}
	}

	thresholds, err := json.Marshal(snap.Settings.Thresholds)
	if err != nil {
		return fmt.Errorf("marshal thresholds: %w", err)
	}
	for key, value := range map[string]string{
		"history_limit": strconv.Itoa(snap.Settings.HistoryLimit),
		"thresholds":    string(thresholds),
	} {
		if _, err := tx.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?)", key, value); err != nil {
			return fmt.Errorf("insert setting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	slog.DebugContext(ctx, "Snapshot saved",
		"list_id", snap.List.ID,
		"items", len(snap.List.Items),
		"history", len(snap.History))
	return nil
}

func insertList(ctx context.Context, tx *sql.Tx, l *core.List) error {
	var finalizedAt any
	if !l.FinalizedAt.IsZero() {
		finalizedAt = l.FinalizedAt
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO lists (id, name, budget_cents, total_cents, status, seq, created_at, finalized_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Name, l.Budget.Cents, l.TotalCents, string(l.Status), l.Seq, l.CreatedAt, finalizedAt)
	if err != nil {
		return fmt.Errorf("insert list %s: %w", l.ID, err)
	}

	for pos, it := range l.Items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO items (list_id, id, position, name, quantity, unit_price_cents, category, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, it.ID, pos, it.Name, it.Quantity, it.UnitPrice.Cents, string(it.Category), it.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert item %d of list %s: %w", it.ID, l.ID, err)
		}
	}
	return nil
}

// Load rebuilds the snapshot from the tables. ok is false on a fresh
// database.
func (s *Store) Load(ctx context.Context) (core.Snapshot, bool, error) {
	var snap core.Snapshot

	activeID := ""

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, budget_cents, total_cents, status, seq, created_at, finalized_at FROM lists")
	if err != nil {
		return snap, false, fmt.Errorf("query lists: %w", err)
	}
	defer rows.Close()

	lists := make(map[string]*core.List)
	for rows.Next() {
		var (
			l           core.List
			status      string
			finalizedAt sql.NullTime
		)
		if err := rows.Scan(&l.ID, &l.Name, &l.Budget.Cents, &l.TotalCents, &status, &l.Seq, &l.CreatedAt, &finalizedAt); err != nil {
			return snap, false, fmt.Errorf("scan list: %w", err)
		}
		l.Status = core.ListStatus(status)
		if finalizedAt.Valid {
			l.FinalizedAt = finalizedAt.Time
		}
		if l.Status == core.StatusActive {
			activeID = l.ID
		}
		lists[l.ID] = &l
	}
	if err := rows.Err(); err != nil {
		return snap, false, fmt.Errorf("iterate lists: %w", err)
	}
	if len(lists) == 0 {
		return snap, false, nil
	}
	if activeID == "" {
		return snap, false, fmt.Errorf("load snapshot: no active list among %d lists", len(lists))
	}

	if err := s.loadItems(ctx, lists); err != nil {
		return snap, false, err
	}

	hrows, err := s.db.QueryContext(ctx, "SELECT rank, list_id, finalized_at FROM history ORDER BY rank")
	if err != nil {
		return snap, false, fmt.Errorf("query history: %w", err)
	}
	defer hrows.Close()

	var history []core.HistoryRecord
	for hrows.Next() {
		var (
			rank        int
			listID      string
			finalizedAt time.Time
		)
		if err := hrows.Scan(&rank, &listID, &finalizedAt); err != nil {
			return snap, false, fmt.Errorf("scan history: %w", err)
		}
		l, found := lists[listID]
		if !found {
			return snap, false, fmt.Errorf("history entry %d references unknown list %s", rank, listID)
		}
		history = append(history, core.HistoryRecord{List: *l, FinalizedAt: finalizedAt})
	}
	if err := hrows.Err(); err != nil {
		return snap, false, fmt.Errorf("iterate history: %w", err)
	}

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return snap, false, err
	}

	snap = core.Snapshot{List: lists[activeID], History: history, Settings: settings}

	// Round-trip through the codec to reuse the engine's invariant checks.
	blob, err := snap.Encode()
	if err != nil {
		return core.Snapshot{}, false, err
	}
	snap, err = core.DecodeSnapshot(blob)
	if err != nil {
		return core.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *Store) loadItems(ctx context.Context, lists map[string]*core.List) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT list_id, id, name, quantity, unit_price_cents, category, created_at
		 FROM items ORDER BY list_id, position`)
	if err != nil {
		return fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			listID   string
			it       core.Item
			category string
		)
		if err := rows.Scan(&listID, &it.ID, &it.Name, &it.Quantity, &it.UnitPrice.Cents, &category, &it.CreatedAt); err != nil {
			return fmt.Errorf("scan item: %w", err)
		}
		it.Category = core.Category(category)
		l, found := lists[listID]
		if !found {
			return fmt.Errorf("item %d references unknown list %s", it.ID, listID)
		}
		l.Items = append(l.Items, it)
	}
	return rows.Err()
}

func (s *Store) loadSettings(ctx context.Context) (core.Settings, error) {
	settings := core.DefaultSettings()

	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return settings, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return settings, fmt.Errorf("scan setting: %w", err)
		}
		switch key {
		case "history_limit":
			limit, err := strconv.Atoi(value)
			if err != nil {
				return settings, fmt.Errorf("parse history_limit %q: %w", value, err)
			}
			settings.HistoryLimit = limit
		case "thresholds":
			var thresholds []float64
			if err := json.Unmarshal([]byte(value), &thresholds); err != nil {
				return settings, fmt.Errorf("parse thresholds %q: %w", value, err)
			}
			settings.Thresholds = thresholds
		default:
			slog.WarnContext(ctx, "Unknown setting ignored", "key", key)
		}
	}
	return settings, rows.Err()
}

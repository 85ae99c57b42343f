// Package store defines the persistence port for the list engine and is
// implemented by the memory and sqlite backends.
package store

import (
	"context"

	"listinha/internal/core"
)

// Store persists whole engine snapshots. The engine saves after every
// mutation, so Save must replace the previous state atomically.
type Store interface {
	// Save replaces the persisted state with the given snapshot.
	Save(ctx context.Context, snap core.Snapshot) error

	// Load returns the persisted snapshot. ok is false when nothing has
	// been saved yet; that is not an error.
	Load(ctx context.Context) (snap core.Snapshot, ok bool, err error)

	Close() error
}

// Package memory is an in-process Store used by tests and the memory backend.
package memory

import (
	"context"
	"sync"

	"listinha/internal/core"
)

type Store struct {
	mu   sync.Mutex
	blob []byte
}

func New() *Store {
	return &Store{}
}

// Save keeps the encoded snapshot. Encoding also deep-copies, so later
// mutations of the live state cannot leak into the stored one.
func (s *Store) Save(_ context.Context, snap core.Snapshot) error {
	blob, err := snap.Encode()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = blob
	return nil
}

func (s *Store) Load(_ context.Context) (core.Snapshot, bool, error) {
	s.mu.Lock()
	blob := s.blob
	s.mu.Unlock()

	if blob == nil {
		return core.Snapshot{}, false, nil
	}
	snap, err := core.DecodeSnapshot(blob)
	if err != nil {
		return core.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *Store) Close() error {
	return nil
}

// Package compare fetches comparison prices for list items from external
// stores. The engine treats the results as opaque input: fetches run off the
// mutation path, partial or absent results are fine, and cancellation is a
// valid terminal outcome.
package compare

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"listinha/internal/core"
)

// Quote is an externally sourced price for one item at one store.
type Quote struct {
	ItemName string     `json:"item_name"`
	Store    string     `json:"store"`
	Price    core.Money `json:"price"`
}

// Fetcher retrieves quotes for a single item name.
type Fetcher interface {
	Fetch(ctx context.Context, itemName string) ([]Quote, error)
}

// Service fans fetches out across items with a bounded concurrency.
type Service struct {
	fetcher Fetcher
	limit   int
}

func NewService(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher, limit: 4}
}

// Compare fetches quotes for every item. Per-item failures are logged and
// leave that item absent from the result; only context cancellation ends the
// run early, and even then the quotes gathered so far are returned alongside
// the context error.
func (s *Service) Compare(ctx context.Context, items []core.Item) (map[string][]Quote, error) {
	var mu sync.Mutex
	quotes := make(map[string][]Quote)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)

	for _, it := range items {
		g.Go(func() error {
			got, err := s.fetcher.Fetch(gctx, it.Name)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				slog.WarnContext(gctx, "Price fetch failed",
					"item_name", it.Name, "error", err)
				return nil
			}
			mu.Lock()
			quotes[it.Name] = got
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	return quotes, err
}

package compare

import (
	"context"
	"hash/fnv"
	"time"

	"listinha/internal/core"
)

// StubFetcher produces deterministic pseudo-random quotes. There is no real
// price-comparison service behind it; it stands in for one so the rest of
// the pipeline can be exercised end to end.
type StubFetcher struct {
	Stores []string
	// Delay simulates network latency per quote; zero means instant.
	Delay time.Duration
}

var _ Fetcher = (*StubFetcher)(nil)

func (f *StubFetcher) Fetch(ctx context.Context, itemName string) ([]Quote, error) {
	quotes := make([]Quote, 0, len(f.Stores))
	for _, store := range f.Stores {
		if f.Delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.Delay):
			}
		}
		quotes = append(quotes, Quote{
			ItemName: itemName,
			Store:    store,
			Price:    core.Money{Cents: stubCents(itemName, store)},
		})
	}
	return quotes, nil
}

// stubCents derives a stable price in the 1.00–50.99 range from the
// item/store pair.
func stubCents(itemName, store string) int64 {
	h := fnv.New64a()
	h.Write([]byte(itemName))
	h.Write([]byte{0})
	h.Write([]byte(store))
	return int64(h.Sum64()%5000) + 100
}

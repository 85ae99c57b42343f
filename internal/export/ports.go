package export

import (
	"context"

	"listinha/internal/core"
)

// Ports for outbound archive adapters.
type ArchiveWriter interface {
	Append(ctx context.Context, rec core.HistoryRecord) (rowRef string, err error)
}

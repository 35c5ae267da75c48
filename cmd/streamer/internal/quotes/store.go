package quotes

import (
	"context"
)

// Store caches the latest emitted tick per symbol. It holds a single
// current value, not event history.
type Store interface {
	SetLatest(ctx context.Context, symbol string, payload []byte) error
	// GetLatest returns the cached payload and whether one exists.
	GetLatest(ctx context.Context, symbol string) ([]byte, bool, error)
	Close() error
}

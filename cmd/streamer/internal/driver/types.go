package driver

import (
	"context"
	"time"

	"github.com/Aldo10012/StockTicker-DEMO/pkg/models"
)

// Sink is the transport boundary supplied by the hosting server: it
// accepts raw frame bytes and an end-of-stream signal. There is no
// timeout on an individual write, so a hung sink hangs only the driver
// that owns it; hosts can bound writes with their own deadlines.
type Sink interface {
	Write(p []byte) error
	End() error
}

// EventSource produces the next event for a tick.
type EventSource interface {
	Select(seq int64, symbol string) models.Event
}

// QuoteCache receives the latest successfully written price tick.
type QuoteCache interface {
	SetLatest(ctx context.Context, symbol string, payload []byte) error
}

// Clock abstracts pacing so tests run without real sleeps.
type Clock interface {
	Sleep(d time.Duration)
}

// Package driver owns the per-connection streaming loop: select an
// event, encode it, write it, advance the sequence counter, wait out
// the pacing interval, repeat. Encode and write failures are terminal
// for the connection; nothing is retried or replayed.
package driver

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Aldo10012/StockTicker-DEMO/cmd/streamer/internal/sse"
	"github.com/Aldo10012/StockTicker-DEMO/pkg/models"
)

// Driver streams events for exactly one connection. The sequence
// counter is owned by this instance alone, so it needs no locking.
type Driver struct {
	logger   *zap.Logger
	source   EventSource
	sink     Sink
	cache    QuoteCache // optional; nil disables the latest-quote mirror
	clock    Clock
	symbol   string
	interval time.Duration

	seq        int64
	terminated bool
}

func NewDriver(
	logger *zap.Logger,
	source EventSource,
	sink Sink,
	cache QuoteCache,
	clock Clock,
	symbol string,
	interval time.Duration,
) *Driver {
	return &Driver{
		logger:   logger,
		source:   source,
		sink:     sink,
		cache:    cache,
		clock:    clock,
		symbol:   symbol,
		interval: interval,
		seq:      1,
	}
}

// Run blocks until the sink or the encoder fails. The counter advances
// only after a write succeeds, so the emitted ids are exactly 1,2,...,N
// with no gaps and no id ever precedes its frame's bytes. The context
// only scopes cache writes; client disconnects reach the loop as sink
// write failures.
func (d *Driver) Run(ctx context.Context) {
	d.logger.Info("Stream started", zap.String("symbol", d.symbol))

	for {
		ev := d.source.Select(d.seq, d.symbol)

		frame := sse.Frame{
			Payloads: []any{ev},
			Event:    ev.Category(),
			ID:       strconv.FormatInt(d.seq, 10),
		}
		b, err := frame.Encode()
		if err != nil {
			d.logger.Error("Frame encode failed",
				zap.String("symbol", d.symbol),
				zap.Int64("seq", d.seq),
				zap.Error(err))
			d.terminate()
			return
		}

		if err := d.sink.Write(b); err != nil {
			d.logger.Info("Stream closed",
				zap.String("symbol", d.symbol),
				zap.Int64("last_id", d.seq-1),
				zap.Error(err))
			d.terminate()
			return
		}
		d.seq++

		d.mirrorQuote(ctx, ev)

		d.clock.Sleep(d.interval)
	}
}

// mirrorQuote publishes the latest price tick to the cache. Best
// effort: a cache outage must not take down a healthy stream.
func (d *Driver) mirrorQuote(ctx context.Context, ev models.Event) {
	if d.cache == nil {
		return
	}
	tick, ok := ev.(models.PriceUpdate)
	if !ok {
		return
	}
	payload, err := json.Marshal(tick)
	if err != nil {
		return
	}
	if err := d.cache.SetLatest(ctx, d.symbol, payload); err != nil {
		d.logger.Debug("Quote cache update failed",
			zap.String("symbol", d.symbol), zap.Error(err))
	}
}

// terminate marks the driver done and sends a best-effort end-of-stream
// signal. Failures of that final signal never escalate.
func (d *Driver) terminate() {
	d.terminated = true
	if err := d.sink.End(); err != nil {
		d.logger.Debug("End-of-stream signal failed",
			zap.String("symbol", d.symbol), zap.Error(err))
	}
}

// Seq reports the current counter value: 1 + the number of frames
// successfully written so far.
func (d *Driver) Seq() int64 { return d.seq }

// Terminated reports whether the loop has stopped.
func (d *Driver) Terminated() bool { return d.terminated }

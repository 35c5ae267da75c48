package driver_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Aldo10012/StockTicker-DEMO/cmd/streamer/internal/driver"
	"github.com/Aldo10012/StockTicker-DEMO/cmd/streamer/internal/testutils"
	"github.com/Aldo10012/StockTicker-DEMO/pkg/models"
)

// stubSource always returns the same event.
type stubSource struct {
	ev models.Event
}

func (s stubSource) Select(seq int64, symbol string) models.Event { return s.ev }

// badEvent cannot be marshaled to JSON.
type badEvent struct {
	Ch chan int
}

func (badEvent) Category() string { return "bad_event" }

func newDriver(sink driver.Sink, cache driver.QuoteCache, ev models.Event) (*driver.Driver, *testutils.MockClock) {
	clock := &testutils.MockClock{CurrentTime: time.Unix(0, 0)}
	d := driver.NewDriver(zap.NewNop(), stubSource{ev: ev}, sink, cache, clock, "AAPL", 2*time.Second)
	return d, clock
}

func tick() models.Event {
	return models.PriceUpdate{Symbol: "AAPL", Price: 182.5, Timestamp: "2024-01-01T00:00:00Z"}
}

func TestDriver_SequentialIDs(t *testing.T) {
	sink := &testutils.MockSink{FailOn: 6}
	d, clock := newDriver(sink, nil, tick())

	d.Run(context.Background())

	if len(sink.Frames) != 5 {
		t.Fatalf("Expected 5 frames, got %d", len(sink.Frames))
	}
	for i, frame := range sink.Frames {
		want := fmt.Sprintf("\nid: %d\n", i+1)
		if !strings.Contains(string(frame), want) {
			t.Errorf("Frame %d missing %q:\n%s", i, want, frame)
		}
	}
	if !d.Terminated() {
		t.Error("Driver should be terminated")
	}
	// One pacing sleep per successful write, none after the failure
	if len(clock.Sleeps) != 5 {
		t.Errorf("Expected 5 sleeps, got %d", len(clock.Sleeps))
	}
}

func TestDriver_CounterFrozenOnWriteFailure(t *testing.T) {
	sink := &testutils.MockSink{FailOn: 5}
	d, _ := newDriver(sink, nil, tick())

	d.Run(context.Background())

	// 4 successful writes, then the 5th fails: counter must stay at 5
	if d.Seq() != 5 {
		t.Errorf("Expected counter 5, got %d", d.Seq())
	}
	if len(sink.Frames) != 4 {
		t.Errorf("Expected 4 frames, got %d", len(sink.Frames))
	}
	if !d.Terminated() {
		t.Error("Driver should be terminated")
	}
	if sink.EndCalls != 1 {
		t.Errorf("Expected exactly one End call, got %d", sink.EndCalls)
	}
}

func TestDriver_EncodeFailureTerminates(t *testing.T) {
	sink := &testutils.MockSink{}
	d, clock := newDriver(sink, nil, badEvent{})

	d.Run(context.Background())

	if len(sink.Frames) != 0 {
		t.Errorf("No frame should be written, got %d", len(sink.Frames))
	}
	if d.Seq() != 1 {
		t.Errorf("Counter must not advance past a failed encode, got %d", d.Seq())
	}
	if !d.Terminated() {
		t.Error("Driver should be terminated")
	}
	if sink.EndCalls != 1 {
		t.Errorf("Expected exactly one End call, got %d", sink.EndCalls)
	}
	if len(clock.Sleeps) != 0 {
		t.Errorf("No sleep after terminal failure, got %d", len(clock.Sleeps))
	}
}

func TestDriver_EndFailureSwallowed(t *testing.T) {
	sink := &testutils.MockSink{FailOn: 1, FailEnd: true}
	d, _ := newDriver(sink, nil, tick())

	// Must return normally even though the final End signal fails
	d.Run(context.Background())

	if !d.Terminated() {
		t.Error("Driver should be terminated")
	}
	if sink.EndCalls != 1 {
		t.Errorf("Expected exactly one End call, got %d", sink.EndCalls)
	}
}

func TestDriver_QuoteCacheMirror(t *testing.T) {
	sink := &testutils.MockSink{FailOn: 4}
	cache := &testutils.MockQuoteCache{}
	d, _ := newDriver(sink, cache, tick())

	d.Run(context.Background())

	payload, ok := cache.Latest["AAPL"]
	if !ok {
		t.Fatal("Cache should hold the latest AAPL tick")
	}
	var update models.PriceUpdate
	if err := json.Unmarshal(payload, &update); err != nil {
		t.Fatalf("Cached payload is invalid JSON: %v", err)
	}
	if update.Price != 182.5 {
		t.Errorf("Expected cached price 182.5, got %f", update.Price)
	}
}

func TestDriver_CacheFailureNotTerminal(t *testing.T) {
	sink := &testutils.MockSink{FailOn: 4}
	cache := &testutils.MockQuoteCache{ShouldFail: true}
	d, _ := newDriver(sink, cache, tick())

	d.Run(context.Background())

	// Cache errors are logged and swallowed; the stream keeps going
	// until the sink fails
	if len(sink.Frames) != 3 {
		t.Errorf("Expected 3 frames despite cache errors, got %d", len(sink.Frames))
	}
	if d.Seq() != 4 {
		t.Errorf("Expected counter 4, got %d", d.Seq())
	}
}

func TestDriver_NonPriceEventsSkipCache(t *testing.T) {
	sink := &testutils.MockSink{FailOn: 3}
	cache := &testutils.MockQuoteCache{}
	d, _ := newDriver(sink, cache, models.MarketStatus{IsOpen: true})

	d.Run(context.Background())

	if len(cache.Latest) != 0 {
		t.Errorf("Only price updates should reach the cache, got %d entries", len(cache.Latest))
	}
}

package selector

import (
	"time"

	"github.com/Aldo10012/StockTicker-DEMO/pkg/models"
)

// Upper bounds of the probability bands for a uniform roll in [1,100].
// Checked in order; anything above the last bound falls through to
// TradingResume, so the measured split is 80/10/5/5.
const (
	priceUpdateMax  = 80
	marketStatusMax = 90
	tradingHaltMax  = 95
)

const (
	haltReason          = "Volatility circuit breaker triggered"
	haltDurationMinutes = 15
)

// Selector picks one event per tick according to fixed probability bands.
type Selector struct {
	rand     Rand
	clock    Clock
	priceMin float64
	priceMax float64
}

func New(rnd Rand, clock Clock, priceMin, priceMax float64) *Selector {
	return &Selector{
		rand:     rnd,
		clock:    clock,
		priceMin: priceMin,
		priceMax: priceMax,
	}
}

// Select draws one event for the given tick. Total over its inputs:
// every roll maps to exactly one category, so there is no error path.
// The sequence id itself travels in the frame, not the payload.
func (s *Selector) Select(seq int64, symbol string) models.Event {
	roll := s.rand.Intn(100) + 1

	switch {
	case roll <= priceUpdateMax:
		price := s.priceMin + s.rand.Float64()*(s.priceMax-s.priceMin)
		return models.PriceUpdate{
			Symbol:    symbol,
			Price:     price,
			Timestamp: s.clock.Now().UTC().Format(time.RFC3339),
		}
	case roll <= marketStatusMax:
		// The market never closes in this simulation, so
		// next_open_time stays absent.
		return models.MarketStatus{IsOpen: true}
	case roll <= tradingHaltMax:
		return models.TradingHalt{
			Symbol:          symbol,
			Reason:          haltReason,
			DurationMinutes: haltDurationMinutes,
		}
	default:
		return models.TradingResume{Symbol: symbol}
	}
}

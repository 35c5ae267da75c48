package models

// Category names as they appear in the wire format's "event:" field.
const (
	CategoryPriceUpdate   = "price_update"
	CategoryMarketStatus  = "market_status"
	CategoryTradingHalt   = "trading_halt"
	CategoryTradingResume = "trading_resume"
)

// Event is the closed set of market events the streamer can emit.
// Every variant is an immutable value constructed fresh per tick.
type Event interface {
	Category() string
}

// PriceUpdate represents a single market tick for a stock symbol
type PriceUpdate struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Timestamp string  `json:"timestamp"` // RFC3339, UTC
}

func (PriceUpdate) Category() string { return CategoryPriceUpdate }

// MarketStatus reports whether the market is currently open.
// NextOpenTime is only meaningful while closed and is omitted otherwise.
type MarketStatus struct {
	IsOpen       bool    `json:"is_open"`
	NextOpenTime *string `json:"next_open_time,omitempty"` // RFC3339, UTC
}

func (MarketStatus) Category() string { return CategoryMarketStatus }

// TradingHalt announces a temporary halt for a symbol.
type TradingHalt struct {
	Symbol          string `json:"symbol"`
	Reason          string `json:"reason"`
	DurationMinutes int    `json:"duration_minutes"`
}

func (TradingHalt) Category() string { return CategoryTradingHalt }

// TradingResume announces that trading resumed for a symbol.
type TradingResume struct {
	Symbol string `json:"symbol"`
}

func (TradingResume) Category() string { return CategoryTradingResume }

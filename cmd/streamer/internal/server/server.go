// Package server binds the stream driver to an HTTP request/response
// cycle: it validates the requested symbol, sets the SSE headers and
// runs exactly one driver per accepted connection.
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Aldo10012/StockTicker-DEMO/cmd/streamer/internal/driver"
	"github.com/Aldo10012/StockTicker-DEMO/cmd/streamer/internal/quotes"
	"github.com/Aldo10012/StockTicker-DEMO/cmd/streamer/internal/selector"
	"github.com/Aldo10012/StockTicker-DEMO/cmd/streamer/internal/sse"
	"github.com/Aldo10012/StockTicker-DEMO/pkg/config"
)

type Server struct {
	logger       *zap.Logger
	cfg          *config.Config
	rnd          selector.Rand
	clock        selector.Clock
	quotes       quotes.Store // may be nil when the cache is disabled
	validTickers map[string]bool
}

func New(logger *zap.Logger, cfg *config.Config, rnd selector.Rand, clock selector.Clock, store quotes.Store) *Server {
	validTickers := make(map[string]bool)
	for _, t := range cfg.Stream.Tickers {
		validTickers[t] = true
	}
	return &Server{
		logger:       logger,
		cfg:          cfg,
		rnd:          rnd,
		clock:        clock,
		quotes:       store,
		validTickers: validTickers,
	}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/stream", s.handleStream)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))
	if symbol == "" {
		http.Error(w, "missing symbol", http.StatusBadRequest)
		return
	}
	if !s.validTickers[symbol] {
		http.Error(w, "unknown symbol: "+symbol, http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.logger.Error("Response writer does not support flushing")
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sink := &sseSink{w: w, r: r, flusher: flusher}

	s.sendSnapshot(sink, r, symbol)

	sel := selector.New(s.rnd, s.clock, s.cfg.Stream.PriceMin, s.cfg.Stream.PriceMax)
	d := driver.NewDriver(s.logger, sel, sink, s.quoteCache(), s.clock, symbol, s.cfg.Stream.Interval)
	d.Run(r.Context())
}

// quoteCache narrows the optional store to the driver's interface,
// preserving nil when the cache is disabled.
func (s *Server) quoteCache() driver.QuoteCache {
	if s.quotes == nil {
		return nil
	}
	return s.quotes
}

// sendSnapshot emits the last cached tick for the symbol, if any, as a
// single id-less "snapshot" frame so a client has a price to paint
// before the first live tick. Best effort: the live stream starts
// regardless.
func (s *Server) sendSnapshot(sink *sseSink, r *http.Request, symbol string) {
	if s.quotes == nil {
		return
	}
	payload, ok, err := s.quotes.GetLatest(r.Context(), symbol)
	if err != nil {
		s.logger.Warn("Snapshot lookup failed", zap.String("symbol", symbol), zap.Error(err))
		return
	}
	if !ok {
		return
	}
	frame := sse.Frame{Payloads: []any{json.RawMessage(payload)}, Event: "snapshot"}
	b, err := frame.Encode()
	if err != nil {
		s.logger.Warn("Snapshot encode failed", zap.String("symbol", symbol), zap.Error(err))
		return
	}
	if err := sink.Write(b); err != nil {
		s.logger.Debug("Snapshot write failed", zap.String("symbol", symbol), zap.Error(err))
	}
}

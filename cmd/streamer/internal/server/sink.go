package server

import (
	"net/http"

	"github.com/Aldo10012/StockTicker-DEMO/cmd/streamer/internal/driver"
)

// Compile-time check to ensure sseSink implements driver.Sink
var _ driver.Sink = (*sseSink)(nil)

// sseSink binds the driver's sink contract to an HTTP response.
type sseSink struct {
	w       http.ResponseWriter
	r       *http.Request
	flusher http.Flusher
}

// Write sends one frame and flushes it to the client immediately. The
// request context is checked first so a client disconnect surfaces as a
// write failure and takes the driver's normal termination path.
func (s *sseSink) Write(p []byte) error {
	if err := s.r.Context().Err(); err != nil {
		return err
	}
	if _, err := s.w.Write(p); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// End flushes any buffered bytes. For HTTP the stream actually ends
// when the handler returns, so there is nothing else to signal.
func (s *sseSink) End() error {
	s.flusher.Flush()
	return nil
}

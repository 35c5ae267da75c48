// Package sse builds text/event-stream frames: one or more "data:" lines
// of single-line JSON, optional "event:", "id:" and "retry:" fields, and
// a trailing blank line that marks the end of the frame.
package sse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

// ErrNoData is returned when a frame carries no payloads at all.
// Structurally impossible for the current event variants, but enforced
// so a future variant cannot silently emit an empty frame.
var ErrNoData = errors.New("sse: frame has no data payloads")

// Frame is one complete wire-format message block.
type Frame struct {
	Payloads []any         // JSON-encoded, one "data:" line each
	Event    string        // optional category name
	ID       string        // optional sequence id
	Retry    time.Duration // optional reconnect hint, emitted in milliseconds when > 0
}

// Encode serializes the frame. Fails with ErrNoData on an empty payload
// set and with a wrapped error when a payload cannot be marshaled to
// valid JSON text; a failed frame writes nothing.
func (f Frame) Encode() ([]byte, error) {
	if len(f.Payloads) == 0 {
		return nil, ErrNoData
	}

	var buf bytes.Buffer
	for _, p := range f.Payloads {
		b, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("sse: encode payload: %w", err)
		}
		if !utf8.Valid(b) {
			return nil, fmt.Errorf("sse: payload is not valid UTF-8 text")
		}
		buf.WriteString("data: ")
		buf.Write(b)
		buf.WriteByte('\n')
	}

	if f.Event != "" {
		buf.WriteString("event: ")
		buf.WriteString(f.Event)
		buf.WriteByte('\n')
	}
	if f.ID != "" {
		buf.WriteString("id: ")
		buf.WriteString(f.ID)
		buf.WriteByte('\n')
	}
	if f.Retry > 0 {
		buf.WriteString("retry: ")
		buf.WriteString(strconv.FormatInt(f.Retry.Milliseconds(), 10))
		buf.WriteByte('\n')
	}

	// Blank line terminates the frame
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

package testutils

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ScriptedRand replays queued values; once a queue runs dry it keeps
// returning the last value (or zero if never filled).
type ScriptedRand struct {
	Ints   []int
	Floats []float64
	iPos   int
	fPos   int
}

func (r *ScriptedRand) Intn(n int) int {
	if len(r.Ints) == 0 {
		return 0
	}
	if r.iPos >= len(r.Ints) {
		return r.Ints[len(r.Ints)-1]
	}
	v := r.Ints[r.iPos]
	r.iPos++
	return v
}

func (r *ScriptedRand) Float64() float64 {
	if len(r.Floats) == 0 {
		return 0
	}
	if r.fPos >= len(r.Floats) {
		return r.Floats[len(r.Floats)-1]
	}
	v := r.Floats[r.fPos]
	r.fPos++
	return v
}

// MockClock advances instantly instead of sleeping.
type MockClock struct {
	CurrentTime time.Time
	Sleeps      []time.Duration
}

func (m *MockClock) Now() time.Time { return m.CurrentTime }

func (m *MockClock) Sleep(d time.Duration) {
	m.CurrentTime = m.CurrentTime.Add(d)
	m.Sleeps = append(m.Sleeps, d)
}

// MockSink records written frames and can be scripted to fail.
type MockSink struct {
	Mu       sync.Mutex
	Frames   [][]byte
	FailOn   int // 1-based write index that starts failing; 0 = never
	FailEnd  bool
	EndCalls int
	writes   int
}

func (m *MockSink) Write(p []byte) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.writes++
	if m.FailOn > 0 && m.writes >= m.FailOn {
		return errors.New("sink closed")
	}
	cp := append([]byte(nil), p...)
	m.Frames = append(m.Frames, cp)
	return nil
}

func (m *MockSink) End() error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.EndCalls++
	if m.FailEnd {
		return errors.New("end-of-stream failed")
	}
	return nil
}

// MockQuoteCache records the latest payload per symbol.
type MockQuoteCache struct {
	Mu         sync.Mutex
	Latest     map[string][]byte
	ShouldFail bool
}

func (m *MockQuoteCache) SetLatest(ctx context.Context, symbol string, payload []byte) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if m.ShouldFail {
		return errors.New("cache error")
	}
	if m.Latest == nil {
		m.Latest = make(map[string][]byte)
	}
	m.Latest[symbol] = append([]byte(nil), payload...)
	return nil
}

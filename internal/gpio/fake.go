package gpio

import (
	"errors"

	"github.com/sweeney/traffic-light/internal/logic"
)

// FakePanel records every applied output vector for test assertions.
type FakePanel struct {
	// Applied contains each output vector in the order it was written.
	Applied []logic.Outputs

	// ApplyError, if set, will be returned by Apply()
	ApplyError error

	// Closed tracks if Close was called
	Closed bool
}

// NewFakePanel creates an empty FakePanel.
func NewFakePanel() *FakePanel {
	return &FakePanel{}
}

// Apply records the output vector.
func (f *FakePanel) Apply(out logic.Outputs) error {
	if f.ApplyError != nil {
		return f.ApplyError
	}
	f.Applied = append(f.Applied, out)
	return nil
}

// Close marks the panel as closed.
func (f *FakePanel) Close() error {
	f.Closed = true
	return nil
}

// Last returns the most recently applied output vector, or the zero vector
// if nothing was applied.
func (f *FakePanel) Last() logic.Outputs {
	if len(f.Applied) == 0 {
		return logic.Outputs{}
	}
	return f.Applied[len(f.Applied)-1]
}

// Reset clears the recorded vectors.
func (f *FakePanel) Reset() {
	f.Applied = nil
	f.Closed = false
	f.ApplyError = nil
}

// FakePoller returns scripted raw levels for the blink-toggle button.
// Each call to Level() consumes the next entry; when the script is
// exhausted the last level repeats.
type FakePoller struct {
	Levels []bool

	// index tracks current position in Levels
	index int

	// ReadError, if set, will be returned by Level()
	ReadError error

	// Closed tracks if Close was called
	Closed bool
}

// NewFakePoller creates a FakePoller with the given levels.
func NewFakePoller(levels []bool) *FakePoller {
	return &FakePoller{Levels: levels}
}

// Level returns the next scripted level.
func (f *FakePoller) Level() (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}
	if len(f.Levels) == 0 {
		return false, errors.New("no levels configured")
	}

	level := f.Levels[f.index]
	if f.index < len(f.Levels)-1 {
		f.index++
	}
	return level, nil
}

// Close marks the poller as closed.
func (f *FakePoller) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the script.
func (f *FakePoller) Reset() {
	f.index = 0
	f.Closed = false
	f.ReadError = nil
}

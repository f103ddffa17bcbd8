package logic

import "time"

// EdgeTrigger debounces falling-edge button events delivered from the GPIO
// event goroutine. It holds only the last accepted timestamp; the level
// itself is irrelevant because the hardware already reports edges.
//
// Accept is called from a single goroutine per line (gpiocdev delivers a
// line's events serially), so no locking is needed.
type EdgeTrigger struct {
	window time.Duration
	last   time.Time
}

// NewEdgeTrigger creates an edge debouncer with the given window.
func NewEdgeTrigger(window time.Duration) *EdgeTrigger {
	return &EdgeTrigger{window: window}
}

// Accept reports whether an edge observed at now should toggle its flag.
// An edge is accepted iff at least the debounce window has elapsed since the
// last accepted edge. The first edge after startup is always accepted.
func (t *EdgeTrigger) Accept(now time.Time) bool {
	if !t.last.IsZero() && now.Sub(t.last) < t.window {
		return false
	}
	t.last = now
	return true
}

// PollTrigger debounces a sampled active-low button. It tracks the last
// observed raw level so a high-to-low transition is detected across polls.
type PollTrigger struct {
	window time.Duration
	// lastLevel is the raw line level from the previous sample.
	// true = high (released, pull-up at rest), false = low (pressed).
	lastLevel bool
	last      time.Time
}

// NewPollTrigger creates a poll debouncer with the given window. The line
// rests high behind its pull-up, so the initial level is high.
func NewPollTrigger(window time.Duration) *PollTrigger {
	return &PollTrigger{window: window, lastLevel: true}
}

// Sample feeds one raw level reading taken at now and reports whether a
// debounced press was accepted. The observed level is recorded regardless of
// the debounce outcome so the next transition is still detected; a toggle is
// accepted only strictly more than the window after the previous one.
func (t *PollTrigger) Sample(level bool, now time.Time) bool {
	pressed := t.lastLevel && !level
	t.lastLevel = level
	if !pressed {
		return false
	}
	if !t.last.IsZero() && now.Sub(t.last) <= t.window {
		return false
	}
	t.last = now
	return true
}

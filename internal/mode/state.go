// Package mode holds the operator-toggled flags shared between the GPIO
// edge handlers and the driver loop.
package mode

import (
	"sync/atomic"

	"github.com/sweeney/traffic-light/internal/logic"
)

// State is the set of mode flags. Each flag has exactly one writer — the
// trigger that owns it — and is read by the driver on every tick. Atomics
// give the cross-goroutine visibility a volatile flag gives an ISR on a
// microcontroller; with a single writer per flag, load-then-store toggling
// cannot lose an update. The zero value is ready to use: all flags false.
type State struct {
	emergency atomic.Bool
	shutdown  atomic.Bool
	blink     atomic.Bool

	emergencyToggles atomic.Int64
	shutdownToggles  atomic.Int64
	blinkToggles     atomic.Int64
}

// ToggleEmergency flips the emergency flag and returns the new value.
// Called only from the emergency button's event goroutine.
func (s *State) ToggleEmergency() bool {
	v := !s.emergency.Load()
	s.emergency.Store(v)
	s.emergencyToggles.Add(1)
	return v
}

// ToggleShutdown flips the shutdown flag and returns the new value.
// Called only from the shutdown button's event goroutine.
func (s *State) ToggleShutdown() bool {
	v := !s.shutdown.Load()
	s.shutdown.Store(v)
	s.shutdownToggles.Add(1)
	return v
}

// ToggleBlink flips the blink flag and returns the new value.
// Called only from the driver loop (the polled trigger).
func (s *State) ToggleBlink() bool {
	v := !s.blink.Load()
	s.blink.Store(v)
	s.blinkToggles.Add(1)
	return v
}

// Snapshot returns the current flag values. The three loads are not a
// single atomic unit; a toggle landing between them delays that mode's
// effect by at most one tick, which the memoryless resolver tolerates.
func (s *State) Snapshot() logic.Modes {
	return logic.Modes{
		Emergency: s.emergency.Load(),
		Shutdown:  s.shutdown.Load(),
		Blink:     s.blink.Load(),
	}
}

// Counts returns the accepted-toggle totals since startup.
func (s *State) Counts() logic.ToggleCounts {
	return logic.ToggleCounts{
		Emergency: s.emergencyToggles.Load(),
		Shutdown:  s.shutdownToggles.Load(),
		Blink:     s.blinkToggles.Load(),
	}
}

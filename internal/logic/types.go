// Package logic contains the pure control core of the traffic-light
// controller. This package has NO external dependencies (no GPIO, MQTT, OS,
// or time.Sleep). Time is always injectable via time.Time parameters.
package logic

import "time"

// Timing constants. These are fixed properties of the controller, not
// configuration: the tick must divide every transition window so each
// boundary is observed by at least one tick.
const (
	// EdgeDebounce is the minimum spacing between accepted toggles of the
	// same interrupt-driven button.
	EdgeDebounce = 200 * time.Millisecond

	// PollDebounce is the minimum spacing between accepted toggles of the
	// polled blink button.
	PollDebounce = 50 * time.Millisecond

	// TickInterval is the driver cadence. Outputs are rewritten every tick.
	TickInterval = 100 * time.Millisecond

	// CycleDuration is the length of the repeating normal-operation cycle.
	CycleDuration = 6000 * time.Millisecond

	// BlinkPeriod is the half-period of blink mode: all outputs flip
	// together every 500ms of wall-clock time.
	BlinkPeriod = 500 * time.Millisecond
)

// Normal-cycle window boundaries (upper bound, exclusive).
const (
	redEnd    = 2000 * time.Millisecond
	yellowEnd = 2500 * time.Millisecond
	greenEnd  = 4500 * time.Millisecond
	flashEnd  = 5500 * time.Millisecond

	// flashSubTick is the granularity of the triple-flash window.
	flashSubTick = 100 * time.Millisecond
)

// Outputs is the complete output vector for the four indicator lines.
// It is recomputed from scratch on every tick; the zero value is all-off.
type Outputs struct {
	Red    bool
	Yellow bool
	Green  bool
	Blink  bool
}

// Modes is a point-in-time snapshot of the three operator-toggled flags.
type Modes struct {
	Emergency bool
	Shutdown  bool
	Blink     bool
}

// Mode identifies which branch of the priority chain is in effect.
type Mode string

const (
	ModeShutdown  Mode = "SHUTDOWN"
	ModeEmergency Mode = "EMERGENCY"
	ModeBlink     Mode = "BLINK"
	ModeNormal    Mode = "NORMAL"
)

// Trigger identifies which button produced a toggle.
type Trigger string

const (
	TriggerEmergency Trigger = "EMERGENCY"
	TriggerShutdown  Trigger = "SHUTDOWN"
	TriggerBlink     Trigger = "BLINK"
)

// EventType represents a mode-toggle event.
type EventType string

const (
	EventEmergencyOn  EventType = "EMERGENCY_ON"
	EventEmergencyOff EventType = "EMERGENCY_OFF"
	EventShutdownOn   EventType = "SHUTDOWN_ON"
	EventShutdownOff  EventType = "SHUTDOWN_OFF"
	EventBlinkOn      EventType = "BLINK_ON"
	EventBlinkOff     EventType = "BLINK_OFF"
)

// ToggleEventType maps an accepted toggle to its event type.
func ToggleEventType(trigger Trigger, on bool) EventType {
	switch trigger {
	case TriggerEmergency:
		if on {
			return EventEmergencyOn
		}
		return EventEmergencyOff
	case TriggerShutdown:
		if on {
			return EventShutdownOn
		}
		return EventShutdownOff
	default:
		if on {
			return EventBlinkOn
		}
		return EventBlinkOff
	}
}

// Event represents an accepted mode toggle to be published.
type Event struct {
	Timestamp time.Time
	Trigger   Trigger
	Type      EventType
	// Modes is the flag snapshot immediately after the toggle.
	Modes Modes
}

// ToggleCounts tracks accepted toggles per trigger since startup.
type ToggleCounts struct {
	Emergency int64
	Shutdown  int64
	Blink     int64
}

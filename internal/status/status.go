// Package status provides a thread-safe status tracker for the traffic-light
// daemon. It is read by the HTTP handlers and feeds the MQTT status payloads.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/traffic-light/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	TickMs         int64
	EdgeDebounceMs int64
	PollDebounceMs int64
	CycleMs        int64
	HeartbeatMs    int64
	Chip           string
	Broker         string
	HTTPAddr       string
	WSBroker       string // Websocket broker URL for browser MQTT (empty = disabled)
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Modes         logic.Modes
	Active        logic.Mode
	Lights        logic.Outputs
	Counts        logic.ToggleCounts
	StartTime     time.Time
	CycleStart    time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// CycleElapsed returns the position within the normal cycle at Now.
func (s Snapshot) CycleElapsed() time.Duration {
	return logic.CycleElapsed(s.Now, s.CycleStart)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker. startTime doubles as the cycle reference —
// both are captured at the same instant during startup.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime:  startTime,
			CycleStart: startTime,
			Active:     logic.ModeNormal,
			Config:     cfg,
		},
	}
}

// Update sets mode flags, the resolved mode, the applied output vector and
// the toggle counts. Called from the driver loop on every tick.
func (t *Tracker) Update(modes logic.Modes, lights logic.Outputs, counts logic.ToggleCounts) {
	t.mu.Lock()
	t.snap.Modes = modes
	t.snap.Active = logic.ActiveMode(modes)
	t.snap.Lights = lights
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}

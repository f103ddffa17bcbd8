package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event          string     `json:"event,omitempty"`
	Reason         string     `json:"reason,omitempty"`
	Mode           string     `json:"mode"`
	Lights         LightsJSON `json:"lights"`
	Flags          FlagsJSON  `json:"flags"`
	CycleElapsedMs int64      `json:"cycle_elapsed_ms"`
	UptimeSeconds  int64      `json:"uptime_seconds"`
	StartTime      string     `json:"start_time"`
	Timestamp      string     `json:"timestamp"`
	MQTT           MQTTStatus `json:"mqtt"`
	Counts         CountsJSON `json:"toggle_counts"`
	Config         ConfigJSON `json:"config"`
}

// LightsJSON is the JSON representation of the output vector.
type LightsJSON struct {
	Red    bool `json:"red"`
	Yellow bool `json:"yellow"`
	Green  bool `json:"green"`
	Blink  bool `json:"blink"`
}

// FlagsJSON is the JSON representation of the mode flags.
type FlagsJSON struct {
	Emergency bool `json:"emergency"`
	Shutdown  bool `json:"shutdown"`
	Blink     bool `json:"blink"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of toggle counts.
type CountsJSON struct {
	Emergency int64 `json:"emergency"`
	Shutdown  int64 `json:"shutdown"`
	Blink     int64 `json:"blink"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	TickMs         int64  `json:"tick_ms"`
	EdgeDebounceMs int64  `json:"edge_debounce_ms"`
	PollDebounceMs int64  `json:"poll_debounce_ms"`
	CycleMs        int64  `json:"cycle_ms"`
	HeartbeatMs    int64  `json:"heartbeat_ms"`
	Chip           string `json:"chip"`
	Broker         string `json:"broker"`
	HTTPAddr       string `json:"http_addr"`
	WSBroker       string `json:"ws_broker,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		Mode: string(snap.Active),
		Lights: LightsJSON{
			Red:    snap.Lights.Red,
			Yellow: snap.Lights.Yellow,
			Green:  snap.Lights.Green,
			Blink:  snap.Lights.Blink,
		},
		Flags: FlagsJSON{
			Emergency: snap.Modes.Emergency,
			Shutdown:  snap.Modes.Shutdown,
			Blink:     snap.Modes.Blink,
		},
		CycleElapsedMs: snap.CycleElapsed().Milliseconds(),
		UptimeSeconds:  int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:      snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:      snap.Now.UTC().Format(time.RFC3339),
		MQTT:           MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Emergency: snap.Counts.Emergency,
			Shutdown:  snap.Counts.Shutdown,
			Blink:     snap.Counts.Blink,
		},
		Config: ConfigJSON{
			TickMs:         snap.Config.TickMs,
			EdgeDebounceMs: snap.Config.EdgeDebounceMs,
			PollDebounceMs: snap.Config.PollDebounceMs,
			CycleMs:        snap.Config.CycleMs,
			HeartbeatMs:    snap.Config.HeartbeatMs,
			Chip:           snap.Config.Chip,
			Broker:         snap.Config.Broker,
			HTTPAddr:       snap.Config.HTTPAddr,
			WSBroker:       snap.Config.WSBroker,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}

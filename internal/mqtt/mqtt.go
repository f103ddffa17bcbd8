// Package mqtt publishes controller telemetry with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/traffic-light/internal/logic"
)

// Topic is the MQTT topic for mode-toggle events.
const Topic = "traffic/controller/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "traffic/controller/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a mode-toggle event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event logic.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload for a toggle event.
type Payload struct {
	Traffic TrafficPayload `json:"traffic"`
}

// TrafficPayload contains the toggle event details.
type TrafficPayload struct {
	Timestamp string    `json:"timestamp"`
	Event     string    `json:"event"`
	Modes     ModeFlags `json:"modes"`
}

// ModeFlags is the flag snapshot carried by every toggle event.
type ModeFlags struct {
	Emergency bool `json:"emergency"`
	Shutdown  bool `json:"shutdown"`
	Blink     bool `json:"blink"`
}

// FormatPayload creates the JSON payload for a toggle event.
func FormatPayload(event logic.Event) ([]byte, error) {
	payload := Payload{
		Traffic: TrafficPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			Modes: ModeFlags{
				Emergency: event.Modes.Emergency,
				Shutdown:  event.Modes.Shutdown,
				Blink:     event.Modes.Blink,
			},
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (LWT) that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}

// Command traffic-light drives a four-lamp traffic light from a Linux GPIO
// chip, with three mode buttons and MQTT/HTTP telemetry.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/traffic-light/internal/gpio"
	"github.com/sweeney/traffic-light/internal/logic"
	"github.com/sweeney/traffic-light/internal/metrics"
	"github.com/sweeney/traffic-light/internal/mode"
	"github.com/sweeney/traffic-light/internal/mqtt"
	"github.com/sweeney/traffic-light/internal/status"
	"github.com/sweeney/traffic-light/internal/web"
)

func main() {
	chip := flag.String("chip", "gpiochip0", "GPIO chip device name")
	pinRed := flag.Int("pin-red", gpio.DefaultPinRed, "BCM pin number for the red lamp")
	pinYellow := flag.Int("pin-yellow", gpio.DefaultPinYellow, "BCM pin number for the yellow lamp")
	pinGreen := flag.Int("pin-green", gpio.DefaultPinGreen, "BCM pin number for the green lamp")
	pinBlink := flag.Int("pin-blink", gpio.DefaultPinBlink, "BCM pin number for the blink indicator")
	pinEmergency := flag.Int("pin-emergency", gpio.DefaultPinEmergency, "BCM pin number for the emergency button")
	pinShutdown := flag.Int("pin-shutdown", gpio.DefaultPinShutdown, "BCM pin number for the shutdown button")
	pinBlinkBtn := flag.Int("pin-blink-btn", gpio.DefaultPinBlinkBtn, "BCM pin number for the blink toggle button")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address (empty to disable)")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")
	wsBroker := flag.String("ws-broker", "=broker", `MQTT websocket URL for live UI ("=broker" derives from --broker, "off" disables)`)

	flag.Parse()

	pins := gpio.Pins{
		Red:         *pinRed,
		Yellow:      *pinYellow,
		Green:       *pinGreen,
		Blink:       *pinBlink,
		Emergency:   *pinEmergency,
		Shutdown:    *pinShutdown,
		BlinkToggle: *pinBlinkBtn,
	}

	ws := resolveWSBroker(*wsBroker, *broker)
	if err := run(*chip, pins, *broker, *heartbeat, *httpAddr, ws); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(chip string, pins gpio.Pins, broker string, heartbeat time.Duration, httpAddr, wsBroker string) error {
	modeState := &mode.State{}
	met := metrics.New()

	// Toggle events flow from the edge-event goroutines into the driver
	// loop through this channel. Sends never block (see newEdgeHandler).
	toggles := make(chan logic.Event, 8)

	emTrigger := logic.NewEdgeTrigger(logic.EdgeDebounce)
	sdTrigger := logic.NewEdgeTrigger(logic.EdgeDebounce)
	onEmergency := newEdgeHandler(logic.TriggerEmergency, emTrigger, modeState.ToggleEmergency, modeState.Snapshot, toggles)
	onShutdown := newEdgeHandler(logic.TriggerShutdown, sdTrigger, modeState.ToggleShutdown, modeState.Snapshot, toggles)

	// Initialize GPIO
	io, err := gpio.NewRealIO(chip, pins, onEmergency, onShutdown)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer io.Close()

	// Initialize MQTT
	var publisher mqtt.Publisher = noopPublisher{}
	var mqttStatus mqtt.ConnectionStatus
	if broker != "" {
		real := mqtt.NewRealPublisher(broker)
		defer real.Close()
		publisher = real
		mqttStatus = real
	}

	// Initialize status tracker. Its start time is also the cycle reference
	// that the normal cycle counts from.
	tracker := status.NewTracker(time.Now(), status.Config{
		TickMs:         logic.TickInterval.Milliseconds(),
		EdgeDebounceMs: logic.EdgeDebounce.Milliseconds(),
		PollDebounceMs: logic.PollDebounce.Milliseconds(),
		CycleMs:        logic.CycleDuration.Milliseconds(),
		HeartbeatMs:    heartbeat.Milliseconds(),
		Chip:           chip,
		Broker:         broker,
		HTTPAddr:       httpAddr,
		WSBroker:       wsBroker,
	})

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else if broker != "" {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker, met.Handler())
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: chip=%s tick=%v cycle=%v broker=%s heartbeat=%v",
		chip, logic.TickInterval, logic.CycleDuration, broker, heartbeat)

	ticker := time.NewTicker(logic.TickInterval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(io, io, modeState, publisher, mqttStatus, tracker, met, heartbeat, time.Now, ticker.C, toggles, sigCh)
}

// newEdgeHandler builds the callback run on the edge-event goroutine for one
// interrupt button: debounce, flip the flag, hand the event to the driver
// loop. The send must never block; if the channel is full the flag change
// still happened and only the telemetry event is dropped.
func newEdgeHandler(trigger logic.Trigger, debounce *logic.EdgeTrigger, toggle func() bool, snapshot func() logic.Modes, toggles chan<- logic.Event) func(time.Time) {
	return func(now time.Time) {
		if !debounce.Accept(now) {
			return
		}
		on := toggle()
		ev := logic.Event{
			Timestamp: now,
			Trigger:   trigger,
			Type:      logic.ToggleEventType(trigger, on),
			Modes:     snapshot(),
		}
		select {
		case toggles <- ev:
		default:
		}
	}
}

func runLoop(panel gpio.Panel, poll gpio.Poller, modeState *mode.State, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, met *metrics.Metrics, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, toggles <-chan logic.Event, sig <-chan os.Signal) error {
	startTime := now()
	cycleRef := startTime
	lastHeartbeat := startTime
	pollTrigger := logic.NewPollTrigger(logic.PollDebounce)

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case ev := <-toggles:
			log.Printf("event: %s (emergency=%v shutdown=%v blink=%v)",
				ev.Type, ev.Modes.Emergency, ev.Modes.Shutdown, ev.Modes.Blink)
			met.ObserveToggle(ev.Trigger)
			err := publisher.Publish(ev)
			met.ObservePublish(err)
			if err != nil {
				log.Printf("publish error: %v", err)
				// Don't crash on publish failure
			}

		case <-tick:
			t := now()
			modes := modeState.Snapshot()
			out := logic.Resolve(modes, t, cycleRef)
			if err := panel.Apply(out); err != nil {
				log.Printf("gpio write error: %v", err)
				met.GPIOErrors.Inc()
			}
			met.ObserveTick(logic.ActiveMode(modes))

			// The blink toggle button has no edge support; sample it once
			// per tick.
			level, err := poll.Level()
			if err != nil {
				log.Printf("gpio read error: %v", err)
				met.GPIOErrors.Inc()
			} else if pollTrigger.Sample(level, t) {
				on := modeState.ToggleBlink()
				ev := logic.Event{
					Timestamp: t,
					Trigger:   logic.TriggerBlink,
					Type:      logic.ToggleEventType(logic.TriggerBlink, on),
					Modes:     modeState.Snapshot(),
				}
				log.Printf("event: %s (emergency=%v shutdown=%v blink=%v)",
					ev.Type, ev.Modes.Emergency, ev.Modes.Shutdown, ev.Modes.Blink)
				met.ObserveToggle(logic.TriggerBlink)
				perr := publisher.Publish(ev)
				met.ObservePublish(perr)
				if perr != nil {
					log.Printf("publish error: %v", perr)
				}
			}

			if tracker != nil {
				tracker.Update(modeState.Snapshot(), out, modeState.Counts())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}

			// Check for heartbeat
			if heartbeat > 0 && t.Sub(lastHeartbeat) >= heartbeat {
				lastHeartbeat = t
				log.Printf("heartbeat: uptime=%v", t.Sub(startTime).Truncate(time.Second))
				hbEvent := mqtt.SystemEvent{
					Timestamp: t,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}
		}
	}
}

// noopPublisher stands in when telemetry is disabled (-broker "").
type noopPublisher struct{}

func (noopPublisher) Publish(logic.Event) error            { return nil }
func (noopPublisher) PublishSystem(mqtt.SystemEvent) error { return nil }
func (noopPublisher) Close() error                         { return nil }

// resolveWSBroker converts the --ws-broker flag value into a concrete URL.
// "=broker" derives ws://host:9001 from the TCP broker address; empty disables.
func resolveWSBroker(ws, broker string) string {
	if ws == "off" || broker == "" {
		return ""
	}
	if ws != "=broker" {
		return ws
	}
	u, err := url.Parse(broker)
	if err != nil {
		log.Printf("ws-broker: cannot parse --broker %q: %v", broker, err)
		return ""
	}
	u.Scheme = "ws"
	u.Host = u.Hostname() + ":9001"
	return u.String()
}

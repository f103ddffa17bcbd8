// Package metrics exposes Prometheus collectors for the controller,
// served on the status HTTP server at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sweeney/traffic-light/internal/logic"
)

// Metrics bundles the controller's collectors on a private registry, so
// tests can create instances without fighting over the global one.
type Metrics struct {
	registry *prometheus.Registry

	// Ticks counts driver iterations.
	Ticks prometheus.Counter
	// Toggles counts accepted toggles, partitioned by trigger.
	Toggles *prometheus.CounterVec
	// GPIOErrors counts failed GPIO reads/writes.
	GPIOErrors prometheus.Counter
	// Publishes counts MQTT publish attempts, partitioned by result.
	Publishes *prometheus.CounterVec

	// mode is a one-hot gauge of the active mode.
	mode *prometheus.GaugeVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trafficlight_ticks_total",
			Help: "Total number of driver ticks",
		}),
		Toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trafficlight_toggles_total",
			Help: "Total number of accepted mode toggles",
		}, []string{"trigger"}),
		GPIOErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trafficlight_gpio_errors_total",
			Help: "Total number of failed GPIO operations",
		}),
		Publishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trafficlight_mqtt_publishes_total",
			Help: "Total number of MQTT publish attempts",
		}, []string{"result"}),
		mode: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "trafficlight_mode",
			Help: "Active mode (1 for the current mode, 0 otherwise)",
		}, []string{"mode"}),
	}

	m.registry.MustRegister(m.Ticks, m.Toggles, m.GPIOErrors, m.Publishes, m.mode)
	return m
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

var allModes = []logic.Mode{logic.ModeShutdown, logic.ModeEmergency, logic.ModeBlink, logic.ModeNormal}

// ObserveTick records one driver iteration and the mode it resolved.
func (m *Metrics) ObserveTick(active logic.Mode) {
	m.Ticks.Inc()
	for _, mo := range allModes {
		v := 0.0
		if mo == active {
			v = 1.0
		}
		m.mode.WithLabelValues(string(mo)).Set(v)
	}
}

// ObserveToggle records an accepted toggle for the given trigger.
func (m *Metrics) ObserveToggle(trigger logic.Trigger) {
	m.Toggles.WithLabelValues(string(trigger)).Inc()
}

// ObservePublish records the outcome of an MQTT publish attempt.
func (m *Metrics) ObservePublish(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Publishes.WithLabelValues(result).Inc()
}

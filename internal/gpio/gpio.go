// Package gpio drives the indicator outputs and button inputs through the
// Linux GPIO character device. The real implementation uses gpiocdev; the
// fakes allow testing without hardware.
package gpio

import "github.com/sweeney/traffic-light/internal/logic"

// Panel drives the four indicator outputs.
type Panel interface {
	// Apply writes every output unconditionally, even if unchanged.
	Apply(logic.Outputs) error

	// Close releases the output lines.
	Close() error
}

// Poller samples the blink-toggle button's raw level.
// true = high (released; the line rests high behind a pull-up),
// false = low (pressed).
type Poller interface {
	Level() (bool, error)

	// Close releases the input line.
	Close() error
}

// Default pin assignments (BCM numbering).
const (
	DefaultPinRed    = 5
	DefaultPinYellow = 6
	DefaultPinGreen  = 13
	DefaultPinBlink  = 19

	DefaultPinEmergency = 23
	DefaultPinShutdown  = 24
	DefaultPinBlinkBtn  = 25
)

// Pins names every line the controller uses.
type Pins struct {
	Red    int
	Yellow int
	Green  int
	Blink  int

	// Emergency and Shutdown must be on lines with edge-event support.
	Emergency int
	Shutdown  int

	// BlinkToggle is sampled by polling; no edge support required.
	BlinkToggle int
}

// DefaultPins returns the standard wiring.
func DefaultPins() Pins {
	return Pins{
		Red:         DefaultPinRed,
		Yellow:      DefaultPinYellow,
		Green:       DefaultPinGreen,
		Blink:       DefaultPinBlink,
		Emergency:   DefaultPinEmergency,
		Shutdown:    DefaultPinShutdown,
		BlinkToggle: DefaultPinBlinkBtn,
	}
}

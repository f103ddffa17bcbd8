//go:build !linux

package gpio

import (
	"errors"
	"time"

	"github.com/sweeney/traffic-light/internal/logic"
)

// RealIO is not available on non-Linux platforms.
type RealIO struct{}

// NewRealIO returns an error on non-Linux platforms.
func NewRealIO(chipName string, pins Pins, onEmergency, onShutdown func(time.Time)) (*RealIO, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Apply is not implemented on non-Linux platforms.
func (r *RealIO) Apply(logic.Outputs) error {
	return errors.New("gpio: not supported")
}

// Level is not implemented on non-Linux platforms.
func (r *RealIO) Level() (bool, error) {
	return false, errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealIO) Close() error {
	return nil
}

//go:build linux

package gpio

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/traffic-light/internal/logic"
)

// RealIO owns every GPIO line on actual hardware: the four outputs as one
// group, the two edge-detected buttons, and the polled button.
type RealIO struct {
	chip    *gpiocdev.Chip
	outputs *gpiocdev.Lines
	emLine  *gpiocdev.Line
	sdLine  *gpiocdev.Line
	pollBtn *gpiocdev.Line
}

// NewRealIO opens the chip and claims all seven lines. The outputs are
// driven low immediately. onEmergency and onShutdown run on the respective
// line's event goroutine for every falling edge; they must not block.
func NewRealIO(chipName string, pins Pins, onEmergency, onShutdown func(time.Time)) (*RealIO, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	io := &RealIO{chip: chip}

	// All four outputs start low.
	io.outputs, err = chip.RequestLines(
		[]int{pins.Red, pins.Yellow, pins.Green, pins.Blink},
		gpiocdev.AsOutput(0, 0, 0, 0))
	if err != nil {
		io.Close()
		return nil, fmt.Errorf("request output lines: %w", err)
	}

	io.emLine, err = requestEdgeButton(chip, pins.Emergency, onEmergency)
	if err != nil {
		io.Close()
		return nil, fmt.Errorf("request emergency pin %d: %w", pins.Emergency, err)
	}

	io.sdLine, err = requestEdgeButton(chip, pins.Shutdown, onShutdown)
	if err != nil {
		io.Close()
		return nil, fmt.Errorf("request shutdown pin %d: %w", pins.Shutdown, err)
	}

	// The blink button is sampled by the driver loop; no edge detection.
	io.pollBtn, err = chip.RequestLine(pins.BlinkToggle, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		io.Close()
		return nil, fmt.Errorf("request blink-toggle pin %d: %w", pins.BlinkToggle, err)
	}

	return io, nil
}

// requestEdgeButton claims an active-low button with pull-up and
// falling-edge detection. The handler receives the host wall-clock time of
// the edge.
func requestEdgeButton(chip *gpiocdev.Chip, pin int, onPress func(time.Time)) (*gpiocdev.Line, error) {
	return chip.RequestLine(pin,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			if evt.Type == gpiocdev.LineEventFallingEdge {
				onPress(time.Now())
			}
		}))
}

// Apply writes all four outputs in one SetValues call.
func (r *RealIO) Apply(out logic.Outputs) error {
	values := []int{b2i(out.Red), b2i(out.Yellow), b2i(out.Green), b2i(out.Blink)}
	if err := r.outputs.SetValues(values); err != nil {
		return fmt.Errorf("set outputs: %w", err)
	}
	return nil
}

// Level returns the blink-toggle button's raw level.
// true = high (released), false = low (pressed).
func (r *RealIO) Level() (bool, error) {
	v, err := r.pollBtn.Value()
	if err != nil {
		return false, fmt.Errorf("read blink-toggle pin: %w", err)
	}
	return v != 0, nil
}

// Close drives the outputs low, reverts every line to input, and releases
// them. Reverting to input leaves the pins in their boot state so nothing
// stays lit after the process exits.
func (r *RealIO) Close() error {
	var errs []error

	if r.outputs != nil {
		if err := r.outputs.SetValues([]int{0, 0, 0, 0}); err != nil {
			errs = append(errs, fmt.Errorf("clear outputs: %w", err))
		}
		if err := r.outputs.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure outputs: %w", err))
		}
		if err := r.outputs.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close outputs: %w", err))
		}
	}
	for _, l := range []*gpiocdev.Line{r.emLine, r.sdLine, r.pollBtn} {
		if l == nil {
			continue
		}
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close input line: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

package logic

import "time"

// ActiveMode selects the operating mode for a flag snapshot. Precedence is
// fixed: shutdown beats emergency beats blink; the normal cycle applies only
// when no override flag is set. Exactly one mode is ever in effect.
func ActiveMode(m Modes) Mode {
	switch {
	case m.Shutdown:
		return ModeShutdown
	case m.Emergency:
		return ModeEmergency
	case m.Blink:
		return ModeBlink
	default:
		return ModeNormal
	}
}

// Resolve computes the full output vector for a single driver tick. It is a
// memoryless function of its arguments: every output is set or cleared on
// every call, so a missed tick can never leave a stale light latched on.
func Resolve(m Modes, now, cycleRef time.Time) Outputs {
	switch ActiveMode(m) {
	case ModeShutdown:
		return Outputs{}
	case ModeEmergency:
		return Outputs{Red: true}
	case ModeBlink:
		on := blinkPhase(now)
		return Outputs{Red: on, Yellow: on, Green: on, Blink: on}
	default:
		return cycleOutputs(CycleElapsed(now, cycleRef))
	}
}

// blinkPhase is the shared 500ms square wave for blink mode. All four
// outputs derive from the same parity computation, so they flip together.
func blinkPhase(now time.Time) bool {
	return (now.UnixMilli()/BlinkPeriod.Milliseconds())%2 == 0
}

// CycleElapsed returns the position within the normal cycle, always in
// [0, CycleDuration) no matter how large now-cycleRef grows. Go's % keeps
// the sign of the dividend, hence the correction branch.
func CycleElapsed(now, cycleRef time.Time) time.Duration {
	elapsed := now.Sub(cycleRef) % CycleDuration
	if elapsed < 0 {
		elapsed += CycleDuration
	}
	return elapsed
}

// cycleOutputs maps a cycle position to the normal-operation schedule:
// red, yellow, green, a triple flash on the blink line, then yellow again.
func cycleOutputs(elapsed time.Duration) Outputs {
	switch {
	case elapsed < redEnd:
		return Outputs{Red: true}
	case elapsed < yellowEnd:
		return Outputs{Yellow: true}
	case elapsed < greenEnd:
		return Outputs{Green: true}
	case elapsed < flashEnd:
		// 100ms sub-ticks within the window; on at sub-ticks 0, 3 and 6.
		// The resulting pattern is 100ms on / 200ms off twice, then 100ms
		// on / 300ms off — the uneven trailing gap is part of the schedule.
		tick := (elapsed - greenEnd) / flashSubTick
		return Outputs{Blink: tick == 0 || tick == 3 || tick == 6}
	default:
		return Outputs{Yellow: true}
	}
}

package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze time via SetClock.
// Production code uses the real clock; tests inject a fake for deterministic
// dampening, decay, and guard margins.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// CurrentYear returns the calendar year of the active clock. The prediction
// heuristics measure "years into the future" from this value, not from the
// last historical record.
func CurrentYear() int {
	return clock.Now().Year()
}

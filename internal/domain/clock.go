package domain

import "github.com/jonboulle/clockwork"

// clock is the time source behind ProcessedAt stamping. Tests inject a fake
// via SetClock so processed-at timestamps are deterministic.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

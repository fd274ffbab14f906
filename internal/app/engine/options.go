package engine

import "time"

// Options holds tuning knobs for the engine.
type Options struct {
	// TimerTickPeriod is the period of the internal timer tick. The PnL
	// sweep runs once every TimerInterval ticks.
	TimerTickPeriod time.Duration
}

// DefaultOptions returns the default engine options.
func DefaultOptions() *Options {
	return &Options{
		TimerTickPeriod: time.Second,
	}
}

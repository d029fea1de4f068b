package emu

import "time"

// Config contains settings that affect the host's frame clock.
type Config struct {
	Trace    bool // log every press, release and frame at debug level
	LimitFPS bool // pace AdvanceFrame to the Game Boy refresh rate times the speed multiplier

	// Clock hooks; nil uses the wall clock.
	Now   func() time.Time
	Sleep func(time.Duration)
}

func (c *Config) defaults() {
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Sleep == nil {
		c.Sleep = time.Sleep
	}
}

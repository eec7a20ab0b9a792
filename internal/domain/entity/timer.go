package entity

// Countdown is a tick-based timer.
// A zero Countdown is inactive.
type Countdown struct {
	remaining int
}

// Arm (re)starts the countdown. Non-positive durations clear it.
func (c *Countdown) Arm(ticks int) {
	if ticks < 0 {
		ticks = 0
	}
	c.remaining = ticks
}

// Tick advances the countdown by one tick, stopping at zero
func (c *Countdown) Tick() {
	if c.remaining > 0 {
		c.remaining--
	}
}

// Active reports whether ticks remain
func (c *Countdown) Active() bool {
	return c.remaining > 0
}

// Clear stops the countdown
func (c *Countdown) Clear() {
	c.remaining = 0
}

// Remaining returns the number of ticks left
func (c *Countdown) Remaining() int {
	return c.remaining
}

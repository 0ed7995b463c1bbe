package world

import "time"

type ClockConfig struct {
	StartAt      time.Time
	TickDuration time.Duration
}

// Clock maps wall-clock time onto game ticks counted from StartAt.
type Clock struct {
	cfg ClockConfig
}

func NewClock(cfg ClockConfig) Clock {
	if cfg.TickDuration <= 0 {
		cfg.TickDuration = time.Second
	}
	if cfg.StartAt.IsZero() {
		cfg.StartAt = time.Unix(0, 0)
	}
	return Clock{cfg: cfg}
}

func DefaultClock() Clock {
	return NewClock(ClockConfig{})
}

func (c Clock) TickDuration() time.Duration {
	return c.cfg.TickDuration
}

func (c Clock) StartAt() time.Time {
	return c.cfg.StartAt
}

// TickAt returns the current tick index and the time left until the next one.
func (c Clock) TickAt(now time.Time) (int64, time.Duration) {
	elapsed := now.Sub(c.cfg.StartAt)
	if elapsed < 0 {
		return 0, c.cfg.StartAt.Sub(now)
	}
	tick := int64(elapsed / c.cfg.TickDuration)
	offset := elapsed % c.cfg.TickDuration
	return tick, c.cfg.TickDuration - offset
}

func (c Clock) TicksToDuration(ticks int64) time.Duration {
	if ticks <= 0 {
		return 0
	}
	return time.Duration(ticks) * c.cfg.TickDuration
}

func (c Clock) NextTickIn(now time.Time) time.Duration {
	_, next := c.TickAt(now)
	return next
}

package clock

import (
	"hotel/shared/timezone"
	"time"
)

// Clock is the source of "now" for date rules that depend on the current day.
type Clock interface {
	Now() time.Time
}

type appClock struct{}

func New() Clock {
	return &appClock{}
}

func (c *appClock) Now() time.Time {
	return timezone.Now()
}

type FixedClock struct {
	current time.Time
}

func NewFixed(t time.Time) *FixedClock {
	return &FixedClock{current: t}
}

func (c *FixedClock) Now() time.Time {
	return c.current
}

func (c *FixedClock) Set(t time.Time) {
	c.current = t
}

func (c *FixedClock) Add(d time.Duration) {
	c.current = c.current.Add(d)
}

// Today truncates t to midnight in its own location.
func Today(c Clock) time.Time {
	now := c.Now()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

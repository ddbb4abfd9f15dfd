package clock_test

import (
	"hotel/shared/clock"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock(t *testing.T) {
	start := time.Date(2030, 3, 10, 15, 30, 0, 0, time.UTC)
	c := clock.NewFixed(start)

	assert.Equal(t, start, c.Now())

	c.Add(24 * time.Hour)
	assert.Equal(t, start.Add(24*time.Hour), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}

func TestToday(t *testing.T) {
	c := clock.NewFixed(time.Date(2030, 3, 10, 23, 59, 59, 0, time.UTC))

	assert.Equal(t, time.Date(2030, 3, 10, 0, 0, 0, 0, time.UTC), clock.Today(c))
}

func TestAppClock(t *testing.T) {
	assert.False(t, clock.New().Now().IsZero())
}

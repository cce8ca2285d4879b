package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestRealClock(t *testing.T) {
	var c Clock = RealClock{}
	start := c.Now()
	assert.GreaterOrEqual(t, c.Since(start), time.Duration(0))
}

func TestMockClock(t *testing.T) {
	c := NewMockClock(epoch)
	assert.Equal(t, epoch, c.Now())
	assert.Equal(t, epoch, c.Now(), "no step")

	c.Advance(3 * time.Second)
	assert.Equal(t, 3*time.Second, c.Since(epoch))

	c.Set(epoch.Add(time.Hour))
	assert.Equal(t, time.Hour, c.Since(epoch))
}

func TestSteppingClock(t *testing.T) {
	c := NewSteppingClock(epoch, time.Millisecond)
	assert.Equal(t, epoch, c.Now())
	assert.Equal(t, epoch.Add(time.Millisecond), c.Now())
	assert.Equal(t, 2*time.Millisecond, c.Since(epoch))
}

func TestRate(t *testing.T) {
	assert.Equal(t, 0.0, Rate(10, 0))
	assert.InDelta(t, 5.0, Rate(10, 2*time.Second), 1e-12)
}

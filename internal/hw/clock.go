package hw

import "time"

// Clock provides microsecond time for busy-poll windows.
type Clock interface {
	Micros() int64
}

// SystemClock reads the monotonic clock.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Micros() int64 {
	return time.Since(c.start).Microseconds()
}

package polling

import (
	"math"
	"time"
)

// NextDelay applies jitter to the current interval: interval + interval*jitter*(r-0.5),
// rounded to the millisecond. r is uniform in [0,1).
func NextDelay(interval time.Duration, jitterFactor float64, r float64) time.Duration {
	ms := float64(interval) / float64(time.Millisecond)
	delay := math.Round(ms + ms*jitterFactor*(r-0.5))
	return time.Duration(delay) * time.Millisecond
}

// NextInterval grows the interval geometrically, capped at max
func NextInterval(interval time.Duration, growth float64, max time.Duration) time.Duration {
	next := time.Duration(float64(interval) * growth)
	if next > max {
		return max
	}
	return next
}

package watch

import "time"

// rateCounter measures completed ticks per second over one-second windows.
type rateCounter struct {
	lastTick time.Time
	ticks    int
	rate     int
}

func (rc *rateCounter) record(now time.Time) {
	if rc.lastTick.IsZero() {
		rc.lastTick = now
	}
	rc.ticks++
	elapsed := now.Sub(rc.lastTick)
	if elapsed >= time.Second {
		rate := int(float64(rc.ticks) / elapsed.Seconds())
		if rate < 0 {
			rate = 0
		}
		rc.rate = rate
		rc.ticks = 0
		rc.lastTick = now
	}
}

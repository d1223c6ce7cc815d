package vblank

import (
	"time"

	"periph.io/x/conn/v3/physic"
)

// TimerMonitor paces to a fixed rate by sleeping until the next interval boundary.
type TimerMonitor struct {
	rate   physic.Frequency
	period time.Duration
	next   time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewTimerMonitor returns a monitor ticking at rate, FullSpeed if rate is not positive.
func NewTimerMonitor(rate physic.Frequency) *TimerMonitor {
	if rate <= 0 {
		rate = FullSpeed
	}
	return &TimerMonitor{
		rate:   rate,
		period: rate.Period(),
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// WaitForVBlank sleeps until the next boundary. After falling more than a full interval
// behind, the boundaries are realigned to the current time instead of bursting.
func (m *TimerMonitor) WaitForVBlank() bool {
	now := m.now()
	if m.next.IsZero() {
		m.next = now
	}
	m.next = m.next.Add(m.period)

	if d := m.next.Sub(now); d > 0 {
		m.sleep(d)
	} else if -d >= m.period {
		m.next = now
	}
	return true
}

// RefreshRate is the configured rate.
func (m *TimerMonitor) RefreshRate() physic.Frequency {
	return m.rate
}

func (m *TimerMonitor) String() string {
	return "timer vblank monitor at " + m.rate.String()
}

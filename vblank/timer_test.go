package vblank

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/physic"
)

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func newTestTimer(rate physic.Frequency) (*TimerMonitor, *fakeClock) {
	c := &fakeClock{now: time.Unix(1000, 0)}
	m := NewTimerMonitor(rate)
	m.now = func() time.Time { return c.now }
	m.sleep = c.sleep
	return m, c
}

func TestTimerMonitor(t *testing.T) {
	m, c := newTestTimer(50 * physic.Hertz)

	for i := 0; i < 3; i++ {
		if !m.WaitForVBlank() {
			t.Fatal("expected success")
		}
		c.now = c.now.Add(5 * time.Millisecond) // work between frames
	}

	want := []time.Duration{20 * time.Millisecond, 15 * time.Millisecond, 15 * time.Millisecond}
	if diff := cmp.Diff(want, c.sleeps); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
}

func TestTimerMonitorRealigns(t *testing.T) {
	m, c := newTestTimer(50 * physic.Hertz)

	m.WaitForVBlank()
	c.now = c.now.Add(100 * time.Millisecond) // stalled for five frames
	m.WaitForVBlank()
	m.WaitForVBlank()

	want := []time.Duration{20 * time.Millisecond, 20 * time.Millisecond}
	if diff := cmp.Diff(want, c.sleeps); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
}

func TestTimerMonitorDefaultRate(t *testing.T) {
	m := NewTimerMonitor(0)
	if m.RefreshRate() != FullSpeed {
		t.Errorf("expected %s, got %s", FullSpeed, m.RefreshRate())
	}
}

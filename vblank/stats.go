package vblank

import (
	"time"

	"github.com/eapache/queue"
	"periph.io/x/conn/v3/physic"
)

// DefaultStatsWindow is the number of intervals kept by a Runner.
const DefaultStatsWindow = 120

// Stats keeps a bounded window of measured vblank intervals. It is not safe for concurrent use.
type Stats struct {
	window int
	q      *queue.Queue
	sum    time.Duration
	count  uint64
	last   time.Duration
}

// NewStats returns Stats holding at most window intervals.
func NewStats(window int) *Stats {
	if window <= 0 {
		window = DefaultStatsWindow
	}
	return &Stats{
		window: window,
		q:      queue.New(),
	}
}

// Add records an interval, evicting the oldest one when the window is full.
func (s *Stats) Add(d time.Duration) {
	if s.q.Length() == s.window {
		s.sum -= s.q.Remove().(time.Duration)
	}
	s.q.Add(d)
	s.sum += d
	s.last = d
	s.count++
}

// Snapshot summarises the window.
func (s *Stats) Snapshot() Snapshot {
	snap := Snapshot{
		Count:  s.count,
		Window: s.q.Length(),
		Last:   s.last,
	}
	if snap.Window == 0 {
		return snap
	}
	snap.Mean = s.sum / time.Duration(snap.Window)
	snap.Min, snap.Max = s.q.Get(0).(time.Duration), s.q.Get(0).(time.Duration)
	for i := 1; i < snap.Window; i++ {
		d := s.q.Get(i).(time.Duration)
		if d < snap.Min {
			snap.Min = d
		}
		if d > snap.Max {
			snap.Max = d
		}
	}
	return snap
}

// Snapshot of interval statistics.
type Snapshot struct {
	// Count is the total number of intervals recorded.
	Count uint64

	// Window is the number of intervals the remaining fields cover.
	Window int

	Last, Mean, Min, Max time.Duration
}

// Rate is the frequency matching the mean interval, 0 without samples.
func (s Snapshot) Rate() physic.Frequency {
	if s.Mean <= 0 {
		return 0
	}
	return physic.PeriodToFrequency(s.Mean)
}

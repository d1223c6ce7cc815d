package vblank

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/gbmdisplay/egl"
	"github.com/BeatGlow/gbmdisplay/egl/egltest"
)

func TestNewFenceMonitor(t *testing.T) {
	lib := egltest.New()
	m, err := NewFenceMonitor(&Config{Library: lib})
	if err != nil {
		t.Fatalf("NewFenceMonitor() error: %v", err)
	}
	if got := m.RefreshRate(); got != FullSpeed {
		t.Errorf("expected %s, got %s", FullSpeed, got)
	}
	if m.dpy != egltest.DefaultDisplay {
		t.Errorf("expected default display %#x, got %#x", egltest.DefaultDisplay, m.dpy)
	}
	if lib.Calls("eglGetPlatformDisplay") != 0 || lib.Calls("eglGetPlatformDisplayEXT") != 0 {
		t.Error("expected the default display connection, not a platform display")
	}
}

func TestNewFenceMonitorMissingEntryPoint(t *testing.T) {
	for _, name := range []string{egl.CreateSyncKHR, egl.ClientWaitSyncKHR, egl.DestroySyncKHR} {
		t.Run(name, func(t *testing.T) {
			lib := egltest.New()
			lib.Missing = map[string]bool{name: true}

			m, err := NewFenceMonitor(&Config{Library: lib})
			if m != nil {
				t.Error("expected no monitor")
			}
			if !errors.Is(err, ErrUnavailable) || !errors.Is(err, egl.ErrMissingEntryPoint) {
				t.Errorf("expected ErrUnavailable and ErrMissingEntryPoint, got %v", err)
			}
			if lib.Calls("eglGetDisplay") != 0 {
				t.Error("expected no display lookup after a missing entry point")
			}
		})
	}
}

func TestNewFenceMonitorNoDisplay(t *testing.T) {
	lib := egltest.New()
	lib.Default = egl.NoDisplay

	m, err := NewFenceMonitor(&Config{Library: lib})
	if m != nil {
		t.Error("expected no monitor")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestWaitForVBlank(t *testing.T) {
	statuses := []struct {
		name   string
		status egl.Int
	}{
		{"signaled", egl.ConditionSatisfied},
		{"timeout", egl.TimeoutExpired},
		{"error", 0},
	}
	for _, test := range statuses {
		t.Run(test.name, func(t *testing.T) {
			lib := egltest.New()
			lib.WaitStatus = test.status

			m, err := NewFenceMonitor(&Config{Library: lib})
			if err != nil {
				t.Fatalf("NewFenceMonitor() error: %v", err)
			}

			const n = 5
			for i := 1; i <= n; i++ {
				if !m.WaitForVBlank() {
					t.Fatal("expected WaitForVBlank to report success")
				}
				if got := lib.Calls(egl.CreateSyncKHR); got != i {
					t.Errorf("expected %d creates, got %d", i, got)
				}
				if got := lib.Calls(egl.DestroySyncKHR); got != i {
					t.Errorf("expected %d destroys, got %d", i, got)
				}
				if got := lib.Live(); got != 0 {
					t.Errorf("expected no live fences after call %d, got %d", i, got)
				}
			}
			if got := lib.Created(); got != n {
				t.Errorf("expected %d fences, got %d", n, got)
			}
			if lib.WaitFlags != egl.SyncFlushCommandsBit {
				t.Errorf("expected flush flag, got %#x", lib.WaitFlags)
			}
			if lib.WaitTimeout != egl.Forever {
				t.Errorf("expected unbounded timeout, got %#x", lib.WaitTimeout)
			}
		})
	}
}

func TestWaitForVBlankLogsUnsignaledWait(t *testing.T) {
	var lines []string
	log := funcr.New(func(prefix, args string) {
		lines = append(lines, prefix+" "+args)
	}, funcr.Options{Verbosity: 1})

	lib := egltest.New()
	lib.WaitStatus = egl.TimeoutExpired
	m, err := NewFenceMonitor(&Config{Library: lib, Logger: log})
	if err != nil {
		t.Fatalf("NewFenceMonitor() error: %v", err)
	}
	m.WaitForVBlank()

	if len(lines) != 1 || !strings.Contains(lines[0], "fence wait ended without signal") {
		t.Errorf("expected one diagnostic, got %q", lines)
	}
}

func TestNewFallsBackToTimer(t *testing.T) {
	lib := egltest.New()
	lib.Missing = map[string]bool{egl.DestroySyncKHR: true}

	m := New(&Config{Library: lib, Rate: 30 * physic.Hertz})
	timer, ok := m.(*TimerMonitor)
	if !ok {
		t.Fatalf("expected *TimerMonitor, got %T", m)
	}
	if got := timer.RefreshRate().String(); got != "30Hz" {
		t.Errorf("expected 30Hz, got %s", got)
	}
}

func TestNewPrefersFence(t *testing.T) {
	if m := New(&Config{Library: egltest.New()}); m == nil {
		t.Fatal("expected a monitor")
	} else if _, ok := m.(*FenceMonitor); !ok {
		t.Errorf("expected *FenceMonitor, got %T", m)
	}
}

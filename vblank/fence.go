package vblank

import (
	"errors"

	"github.com/go-logr/logr"
	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/gbmdisplay/egl"
)

var errNoDefaultDisplay = errors.New("no default EGL display")

// FenceMonitor approximates vblank arrival with EGL fence completion.
//
// Each wait creates a fence on the default display, blocks on it with a flush and no timeout,
// and destroys it. There is no cancellation: a driver that never signals the fence blocks the
// caller forever.
type FenceMonitor struct {
	log  logr.Logger
	dpy  egl.Display
	sync *egl.FenceSync
	rate physic.Frequency
}

// NewFenceMonitor resolves the fence entry points and the default display. It fails with
// ErrUnavailable if any entry point is missing or no default display exists.
func NewFenceMonitor(config *Config) (*FenceMonitor, error) {
	cfg := config.withDefaults()
	lib := cfg.library()

	sync, err := egl.LoadFenceSync(lib)
	if err != nil {
		return nil, unavailable(err)
	}

	dpy := lib.GetDisplay(egl.DefaultDisplay)
	if dpy == egl.NoDisplay {
		return nil, unavailable(errNoDefaultDisplay)
	}

	return &FenceMonitor{
		log:  cfg.Logger.WithName("vblank"),
		dpy:  dpy,
		sync: sync,
		rate: FullSpeed,
	}, nil
}

// WaitForVBlank blocks until a freshly created fence signals. It always reports success;
// a wait that ends any other way is only logged.
func (m *FenceMonitor) WaitForVBlank() bool {
	sync := m.sync.Create(m.dpy, egl.SyncFence)
	status := m.sync.ClientWait(m.dpy, sync, egl.SyncFlushCommandsBit, egl.Forever)
	m.sync.Destroy(m.dpy, sync)

	if status != egl.ConditionSatisfied {
		m.log.V(1).Info("fence wait ended without signal", "status", status)
	}
	return true
}

// RefreshRate is always FullSpeed.
func (m *FenceMonitor) RefreshRate() physic.Frequency {
	return m.rate
}

func (m *FenceMonitor) String() string {
	return "EGL fence vblank monitor at " + m.rate.String()
}

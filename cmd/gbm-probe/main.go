package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/gbmdisplay"
	"github.com/BeatGlow/gbmdisplay/drm"
	"github.com/BeatGlow/gbmdisplay/drm/drmreg"
	"github.com/BeatGlow/gbmdisplay/egl"
	"github.com/BeatGlow/gbmdisplay/internal/config"
	"github.com/BeatGlow/gbmdisplay/vblank"
)

func main() {
	configFlag := flag.String("config", "", "Configuration file (default: user config directory)")
	deviceFlag := flag.String("device", "", "Render node path or name (default: first render node)")
	framesFlag := flag.Int("frames", 0, "Number of vblanks to measure, 0 runs until interrupted")
	monitorFlag := flag.String("monitor", "", "VBlank monitor: auto, fence or timer")
	rateFlag := flag.Int("rate", 0, "Timer monitor rate in Hz")
	noInitFlag := flag.Bool("no-init", false, "Do not initialize the EGL display")
	verboseFlag := flag.Int("v", 0, "Log verbosity")
	flag.Parse()

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "device":
			cfg.Device = *deviceFlag
		case "frames":
			cfg.Frames = *framesFlag
		case "monitor":
			cfg.Monitor = config.MonitorKind(*monitorFlag)
		case "rate":
			cfg.RateHz = *rateFlag
		case "no-init":
			cfg.Initialize = !*noInitFlag
		case "v":
			cfg.Verbosity = *verboseFlag
		}
	})
	if err = cfg.Validate(); err != nil {
		fatal(err)
	}
	stdr.SetVerbosity(cfg.Verbosity)
	logger := gbmdisplay.Logger.WithName("gbm-probe")

	state, err := host.Init()
	if err != nil {
		fatal(err)
	}
	for _, failure := range state.Failed {
		logger.V(1).Info("host driver failed", "driver", failure.D.String(), "error", failure.Err.Error())
	}

	if err = run(cfg, &gbmdisplay.Config{Logger: logger}); err != nil {
		fatal(err)
	}
}

// run probes the configured device. Everything it opens is closed before it returns.
func run(cfg *config.Config, options *gbmdisplay.Config) error {
	path, err := devicePath(cfg.Device)
	if err != nil {
		return err
	}

	var shared gbmdisplay.SharedDisplay
	options.Shared = &shared
	display, err := gbmdisplay.Open(path, options)
	if err != nil {
		return err
	}
	defer display.Close()
	fmt.Printf("using display: %s\n", display)

	node := display.Device().Node()
	if v, err := node.Version(); err == nil {
		fmt.Printf("using driver: %s\n", v)
	}
	for _, c := range []struct {
		name       string
		capability uint64
	}{
		{"prime", drm.CapPrime},
		{"monotonic timestamps", drm.CapTimestampMonotonic},
		{"sync objects", drm.CapSyncObj},
	} {
		if value, err := node.Cap(c.capability); err == nil {
			fmt.Printf("using capability %s: %d\n", c.name, value)
		}
	}

	if display.Display() == egl.NoDisplay {
		return fmt.Errorf("EGL on %s supports neither %s nor %s", path, egl.EXTPlatformBase, egl.KHRPlatformBase)
	}
	if cfg.Initialize {
		major, minor, err := display.Initialize()
		if err != nil {
			return err
		}
		fmt.Printf("using EGL %d.%d via %s\n", major, minor, display.Extension())
	}

	monitor, err := newMonitor(cfg, options.EGL, options.Logger)
	if err != nil {
		return err
	}
	fmt.Printf("using monitor: %s\n", monitor)

	ticks := make(chan time.Time, 1)
	runner := vblank.NewRunner(monitor, func(t time.Time) {
		select {
		case ticks <- t:
		default:
		}
	}, options.Logger)
	if err = runner.Start(); err != nil {
		return err
	}
	defer runner.Stop()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	if cfg.Frames == 0 {
		fmt.Println("hit control-c to stop...")
	}
loop:
	for frames := 0; cfg.Frames == 0 || frames < cfg.Frames; {
		select {
		case <-ticks:
			frames++
		case <-interrupt:
			break loop
		}
	}
	runner.Stop()

	s := runner.Stats()
	fmt.Printf("measured %d vblanks over the last %d: mean %s (%s), min %s, max %s, last %s\n",
		s.Count, s.Window, s.Mean, s.Rate(), s.Min, s.Max, s.Last)
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return config.DefaultConfig(), nil
		}
	}
	return config.Load(path)
}

func devicePath(device string) (string, error) {
	if strings.ContainsRune(device, '/') {
		return device, nil
	}
	ref, err := drmreg.Find(device)
	if err != nil {
		return "", err
	}
	return ref.Path, nil
}

type namedMonitor interface {
	vblank.Monitor
	fmt.Stringer
}

func newMonitor(cfg *config.Config, lib egl.Library, logger logr.Logger) (namedMonitor, error) {
	rate := physic.Frequency(cfg.RateHz) * physic.Hertz
	switch cfg.Monitor {
	case config.MonitorFence:
		return vblank.NewFenceMonitor(&vblank.Config{Library: lib, Logger: logger})
	case config.MonitorTimer:
		return vblank.NewTimerMonitor(rate), nil
	default:
		m := vblank.New(&vblank.Config{Library: lib, Logger: logger, Rate: rate})
		return m.(namedMonitor), nil
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}

package gbmdisplay

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/BeatGlow/gbmdisplay/drm"
	"github.com/BeatGlow/gbmdisplay/egl"
	"github.com/BeatGlow/gbmdisplay/gbm"
)

// Errors
var (
	ErrDeviceOpen    = errors.New("gbmdisplay: failed to open DRM render device")
	ErrDeviceContext = errors.New("gbmdisplay: failed to create GBM device for render device")
	ErrNoDisplay     = errors.New("gbmdisplay: no EGL platform display")
)

// Logger is the default logger, writing to stderr. Set GBMDISPLAY_DEBUG for verbose output.
var Logger = stdr.New(log.New(os.Stderr, "", log.LstdFlags))

func init() {
	if os.Getenv("GBMDISPLAY_DEBUG") != "" {
		stdr.SetVerbosity(1)
	}
}

// Config for acquiring a display.
type Config struct {
	// GBM creates the device context, gbm.DefaultBackend if nil.
	GBM gbm.Backend

	// EGL provides the EGL entry points, egl.DefaultLibrary if nil.
	EGL egl.Library

	// Shared, if set, is where the display publishes itself as the compositing display.
	Shared *SharedDisplay

	// Logger receives failures and diagnostics. The zero value discards them.
	Logger logr.Logger
}

// DefaultConfig are the default configuration values.
var DefaultConfig = Config{
	Logger: Logger,
}

// PlatformDisplay is an EGL display bound to a GBM device.
type PlatformDisplay struct {
	device    *gbm.Device
	display   egl.Display
	extension string
	lib       egl.Library
	log       logr.Logger
}

// Open acquires a display on the render node at devicePath.
//
// Failing to open the node or to create the GBM device is an error, and nothing stays open.
// When EGL offers neither platform display extension, the returned display has no EGL display
// (see [PlatformDisplay.Display]) and the error is nil.
func Open(devicePath string, config *Config) (*PlatformDisplay, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}

	lg := config.Logger.WithName("gbmdisplay")

	node, err := drm.Open(devicePath)
	if err != nil {
		lg.Error(err, "Failed to open DRM render device", "device", devicePath)
		return nil, fmt.Errorf("%w %s: %w", ErrDeviceOpen, devicePath, err)
	}

	device, err := gbm.NewDevice(node, config.GBM)
	if err != nil {
		lg.Error(err, "Failed to create GBM device for render device", "device", devicePath)
		return nil, fmt.Errorf("%w %s: %w", ErrDeviceContext, devicePath, err)
	}

	if v, err := node.Version(); err == nil {
		lg.V(1).Info("opened render device", "device", devicePath, "driver", v.String())
	}

	lib := config.EGL
	if lib == nil {
		lib = egl.DefaultLibrary
	}

	d := &PlatformDisplay{
		device: device,
		lib:    lib,
		log:    lg,
	}

	if config.Shared != nil {
		if err = config.Shared.Publish(d); err != nil {
			lg.Info("not publishing shared compositing display", "device", devicePath, "reason", err.Error())
		}
	}

	extensions := lib.QueryString(egl.NoDisplay, egl.Extensions)
	if d.extension = egl.PlatformBase(extensions); d.extension == "" {
		lg.Info("EGL has no platform display extension", "device", devicePath)
		return d, nil
	}
	if d.display = egl.PlatformDisplay(lib, d.extension, egl.PlatformGBM, device.Pointer()); d.display == egl.NoDisplay {
		lg.Info("EGL platform display unavailable", "device", devicePath, "extension", d.extension)
	}

	return d, nil
}

// Display is the EGL display, egl.NoDisplay if none could be resolved.
func (d *PlatformDisplay) Display() egl.Display {
	return d.display
}

// Extension is the platform extension the display was resolved through, or "".
func (d *PlatformDisplay) Extension() string {
	return d.extension
}

// Device is the GBM device the display is bound to.
func (d *PlatformDisplay) Device() *gbm.Device {
	return d.device
}

// Driver reports the kernel driver behind the render node.
func (d *PlatformDisplay) Driver() (drm.Version, error) {
	return d.device.Node().Version()
}

// Initialize initializes the EGL display and returns its version.
func (d *PlatformDisplay) Initialize() (major, minor int, err error) {
	if d.display == egl.NoDisplay {
		return 0, 0, ErrNoDisplay
	}
	if major, minor, err = d.lib.Initialize(d.display); err != nil {
		d.log.Error(err, "Failed to initialize EGL display", "device", d.device.Node().Path())
		return 0, 0, err
	}
	if v := d.log.V(1); v.Enabled() {
		v.Info("initialized EGL display", "device", d.device.Node().Path(),
			"vendor", d.lib.QueryString(d.display, egl.Vendor),
			"version", d.lib.QueryString(d.display, egl.Version),
			"clientAPIs", d.lib.QueryString(d.display, egl.ClientAPIs))
	}
	return major, minor, nil
}

func (d *PlatformDisplay) String() string {
	if d.display == egl.NoDisplay {
		return fmt.Sprintf("%s without EGL display", d.device)
	}
	return fmt.Sprintf("%s with EGL display %#x (%s)", d.device, uintptr(d.display), d.extension)
}

// Close releases the GBM device and the render node. The EGL display is left alone.
func (d *PlatformDisplay) Close() error {
	return d.device.Close()
}

// Package drmreg is a registry of the render nodes present on the host.
//
// The registry is populated by a periph host driver, so calling host.Init() from
// periph.io/x/host/v3 enumerates the nodes. [Open] scans on demand when nothing has
// been registered yet.
package drmreg

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"periph.io/x/conn/v3/driver"
	"periph.io/x/conn/v3/driver/driverreg"

	"github.com/BeatGlow/gbmdisplay/drm"
)

// Errors
var (
	ErrNoNodes  = errors.New("drmreg: no render nodes found")
	ErrNotFound = errors.New("drmreg: render node not found")
)

// Ref references a registered render node.
type Ref struct {
	// Name is the node name, such as "renderD128".
	Name string

	// Path is the device node path.
	Path string

	// Number is the node minor number.
	Number int
}

func (r *Ref) String() string {
	return r.Name
}

// Open the render node by name or path. Use "" for the first available node.
func Open(name string) (*drm.Node, error) {
	ref, err := Find(name)
	if err != nil {
		return nil, err
	}
	return drm.Open(ref.Path)
}

// All returns a copy of the registered nodes, ordered by number.
func All() []*Ref {
	mu.Lock()
	defer mu.Unlock()
	out := make([]*Ref, len(byNumber))
	copy(out, byNumber)
	return out
}

// Register a render node by path. Registering the same node twice is an error.
func Register(path string) error {
	name := filepath.Base(path)
	number, err := strconv.Atoi(strings.TrimPrefix(name, "renderD"))
	if err != nil || !strings.HasPrefix(name, "renderD") {
		return fmt.Errorf("drmreg: %q is not a render node", path)
	}

	mu.Lock()
	defer mu.Unlock()
	if _, ok := byName[name]; ok {
		return fmt.Errorf("drmreg: %s already registered", name)
	}
	ref := &Ref{Name: name, Path: path, Number: number}
	byName[name] = ref
	byNumber = append(byNumber, ref)
	sort.Slice(byNumber, func(i, j int) bool { return byNumber[i].Number < byNumber[j].Number })
	return nil
}

// Unregister removes a node from the registry.
func Unregister(name string) error {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := byName[name]; !ok {
		return fmt.Errorf("drmreg: %w: %s", ErrNotFound, name)
	}
	delete(byName, name)
	for i, ref := range byNumber {
		if ref.Name == name {
			byNumber = append(byNumber[:i], byNumber[i+1:]...)
			break
		}
	}
	return nil
}

// Find the render node by name or path. Use "" for the first available node.
func Find(name string) (*Ref, error) {
	if len(All()) == 0 {
		if _, err := scan(); err != nil {
			return nil, err
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if name == "" {
		if len(byNumber) == 0 {
			return nil, ErrNoNodes
		}
		return byNumber[0], nil
	}
	if ref, ok := byName[filepath.Base(name)]; ok {
		return ref, nil
	}
	return nil, fmt.Errorf("drmreg: %w: %s", ErrNotFound, name)
}

func scan() (int, error) {
	paths, err := drm.RenderNodes()
	if err != nil {
		return 0, err
	}
	var n int
	for _, path := range paths {
		if _, ok := lookup(filepath.Base(path)); ok {
			continue
		}
		if err = Register(path); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func lookup(name string) (*Ref, bool) {
	mu.Lock()
	defer mu.Unlock()
	ref, ok := byName[name]
	return ref, ok
}

// renderDriver enumerates render nodes during periph host initialization.
type renderDriver struct{}

var _ driver.Impl = renderDriver{}

func (renderDriver) String() string { return "drm-render" }
func (renderDriver) Prerequisites() []string { return nil }
func (renderDriver) After() []string { return nil }

func (renderDriver) Init() (bool, error) {
	n, err := scan()
	if err != nil {
		return true, err
	}
	if n == 0 && len(All()) == 0 {
		return false, ErrNoNodes
	}
	return true, nil
}

var (
	mu       sync.Mutex
	byName   = map[string]*Ref{}
	byNumber []*Ref
)

func init() {
	driverreg.MustRegister(renderDriver{})
}

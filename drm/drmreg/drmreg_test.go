package drmreg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/BeatGlow/gbmdisplay/drm"
)

func reset(t *testing.T, dir string) {
	t.Helper()
	saved := drm.RenderNodeDir
	drm.RenderNodeDir = dir
	mu.Lock()
	byName = map[string]*Ref{}
	byNumber = nil
	mu.Unlock()
	t.Cleanup(func() {
		drm.RenderNodeDir = saved
		mu.Lock()
		byName = map[string]*Ref{}
		byNumber = nil
		mu.Unlock()
	})
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDriverInit(t *testing.T) {
	dir := t.TempDir()
	reset(t, dir)
	touch(t, dir, "renderD129", "renderD128", "card1")

	ok, err := renderDriver{}.Init()
	if !ok || err != nil {
		t.Fatalf("Init() = %t, %v", ok, err)
	}

	var got []string
	for _, ref := range All() {
		got = append(got, ref.Name)
	}
	if diff := cmp.Diff([]string{"renderD128", "renderD129"}, got); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
}

func TestDriverInitSkipsWithoutNodes(t *testing.T) {
	reset(t, t.TempDir())

	ok, err := renderDriver{}.Init()
	if ok {
		t.Error("expected driver to be skipped")
	}
	if !errors.Is(err, ErrNoNodes) {
		t.Errorf("expected ErrNoNodes, got %v", err)
	}
}

func TestRegister(t *testing.T) {
	reset(t, t.TempDir())

	if err := Register("/dev/dri/renderD130"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if err := Register("/dev/dri/renderD130"); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if err := Register("/dev/dri/card0"); err == nil {
		t.Error("expected card node to be rejected")
	}

	ref, err := Find("renderD130")
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if ref.Number != 130 || ref.Path != "/dev/dri/renderD130" {
		t.Errorf("unexpected ref %+v", ref)
	}

	if err = Unregister("renderD130"); err != nil {
		t.Fatalf("Unregister() error: %v", err)
	}
	if err = Unregister("renderD130"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenNoNodes(t *testing.T) {
	reset(t, t.TempDir())

	if _, err := Open(""); !errors.Is(err, ErrNoNodes) {
		t.Errorf("expected ErrNoNodes, got %v", err)
	}
}

func TestOpenUnknown(t *testing.T) {
	dir := t.TempDir()
	reset(t, dir)
	touch(t, dir, "renderD128")

	if _, err := Open("renderD129"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

package gbmdisplay

import (
	"errors"
	"sync"
	"testing"
)

func TestSharedDisplayPublishOnce(t *testing.T) {
	var (
		shared  SharedDisplay
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	displays := make([]*PlatformDisplay, 8)
	for i := range displays {
		displays[i] = new(PlatformDisplay)
		wg.Add(1)
		go func(d *PlatformDisplay) {
			defer wg.Done()
			err := shared.Publish(d)
			switch {
			case err == nil:
				mu.Lock()
				success++
				mu.Unlock()
			case !errors.Is(err, ErrAlreadyPublished):
				t.Errorf("unexpected error %v", err)
			}
		}(displays[i])
	}
	wg.Wait()

	if success != 1 {
		t.Errorf("expected exactly one publish to succeed, got %d", success)
	}
	if shared.Display() == nil {
		t.Error("expected a shared display")
	}
}

func TestSharedDisplayEmpty(t *testing.T) {
	var shared SharedDisplay
	if shared.Display() != nil {
		t.Error("expected no shared display")
	}
}

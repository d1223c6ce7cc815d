package gbmdisplay

import (
	"errors"
	"sync"
)

// Errors
var (
	ErrAlreadyPublished = errors.New("gbmdisplay: shared display already published")
)

// SharedDisplay holds the display used for compositing. It is set at most once.
type SharedDisplay struct {
	mu      sync.Mutex
	display *PlatformDisplay
}

// Publish sets d as the shared display unless one is already set.
func (s *SharedDisplay) Publish(d *PlatformDisplay) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.display != nil {
		return ErrAlreadyPublished
	}
	s.display = d
	return nil
}

// Display returns the shared display, nil if none was published.
func (s *SharedDisplay) Display() *PlatformDisplay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display
}

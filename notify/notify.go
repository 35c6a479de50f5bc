// Package notify is the transient notification store: a timed-visibility
// record shown by the UI as a snackbar. It is a collaborator of the legacy
// dispatch shim, which forwards the reserved set-notification action here.
package notify

import (
	"sync"
	"time"
)

// DefaultTimeout is the auto-dismiss delay applied when a notification
// does not carry its own.
const DefaultTimeout = 5 * time.Second

const defaultColor = "success"

// Notification is the visible state of the snackbar.
type Notification struct {
	Show    bool
	Text    string
	Color   string
	Timeout time.Duration
}

// Store holds the current notification and dismisses it when its timeout
// elapses.
type Store struct {
	mu      sync.Mutex
	current Notification
	timer   *time.Timer
	gen     uint64
}

// NewStore creates an empty notification store.
func NewStore() *Store {
	return &Store{}
}

// Set shows a notification. An empty color becomes "success" and a zero
// timeout becomes DefaultTimeout; a negative timeout disables
// auto-dismiss.
func (s *Store) Set(n Notification) {
	if n.Color == "" {
		n.Color = defaultColor
	}
	if n.Timeout == 0 {
		n.Timeout = DefaultTimeout
	}
	n.Show = true

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.current = n

	if n.Timeout > 0 {
		gen := s.gen
		s.timer = time.AfterFunc(n.Timeout, func() {
			s.dismiss(gen)
		})
	}
}

// Close hides the current notification and cancels its timer.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.current.Show = false
}

// Snapshot returns a copy of the current notification state.
func (s *Store) Snapshot() Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// dismiss hides the notification unless a newer Set or Close superseded
// the timer that fired.
func (s *Store) dismiss(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	s.current.Show = false
	s.timer = nil
}

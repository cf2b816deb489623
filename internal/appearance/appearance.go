// Package appearance tracks whether the UI renders light or dark.
//
// The mode starts from the host terminal's color scheme. A user toggle
// overrides it for the rest of the session until the host reports a
// different scheme, which resets the mode to match. Nothing is persisted.
package appearance

import (
	"fmt"
	"strings"
	"sync"
)

// Mode is the light/dark preference.
type Mode int

const (
	Dark Mode = iota
	Light
)

func (m Mode) String() string {
	if m == Light {
		return "light"
	}
	return "dark"
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

// ParseMode accepts "light" or "dark" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return Dark, fmt.Errorf("unknown appearance %q", s)
	}
}

// Store holds the current mode.
type Store struct {
	mu      sync.RWMutex
	current Mode
	host    Mode
	subs    map[int]func(Mode)
	nextSub int
}

// NewStore seeds the store from the host-reported mode.
func NewStore(host Mode) *Store {
	return &Store{current: host, host: host, subs: make(map[int]func(Mode))}
}

// Current returns the active mode.
func (s *Store) Current() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Toggle flips the mode and notifies subscribers before returning.
func (s *Store) Toggle() Mode {
	s.mu.Lock()
	s.current = s.current.Opposite()
	next := s.current
	s.mu.Unlock()

	s.notify(next)
	return next
}

// SyncHost records the host-reported mode. When it differs from the last
// host report the store resets to it, discarding any manual toggle, and
// returns true.
func (s *Store) SyncHost(host Mode) bool {
	s.mu.Lock()
	if host == s.host {
		s.mu.Unlock()
		return false
	}
	s.host = host
	changed := s.current != host
	s.current = host
	s.mu.Unlock()

	if changed {
		s.notify(host)
	}
	return true
}

// Subscribe registers fn to run on every mode change. The returned func
// unregisters it.
func (s *Store) Subscribe(fn func(Mode)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(m Mode) {
	s.mu.RLock()
	fns := make([]func(Mode), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(m)
	}
}

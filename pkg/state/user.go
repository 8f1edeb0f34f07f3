// Package state holds session-wide UI state shared between the REPL and
// the event services.
package state

import (
	"sync"

	"github.com/shinsaya/kakeibo-cli/pkg/models"
)

// UserState holds the currently selected user scope for the session and
// notifies subscribers when it changes. A new subscriber immediately
// receives the current value, so consumers created at any point observe
// the same sequence of scopes. Created once per session, never torn down.
type UserState struct {
	mu        sync.RWMutex
	current   models.UserScope
	listeners []func(models.UserScope)
}

// NewUserState creates the session scope holder, starting at ScopeBoth
func NewUserState() *UserState {
	return &UserState{
		current: models.ScopeBoth,
	}
}

// Current returns the currently selected scope
func (s *UserState) Current() models.UserScope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set changes the selected scope and notifies every subscriber
func (s *UserState) Set(scope models.UserScope) {
	s.mu.Lock()
	s.current = scope
	listeners := make([]func(models.UserScope), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(scope)
	}
}

// Subscribe registers fn for scope changes. fn is called synchronously
// with the current value before Subscribe returns.
func (s *UserState) Subscribe(fn func(models.UserScope)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	current := s.current
	s.mu.Unlock()

	fn(current)
}

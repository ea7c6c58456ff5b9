package library

import (
	"imgstudio/internal/core/port"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Sessions keeps one Browser per user. Idle browsers expire.
type Sessions struct {
	service port.LibraryService

	mu       sync.Mutex
	browsers *expirable.LRU[string, *Browser]
}

// NewSessions creates a session store holding at most size browsers
func NewSessions(service port.LibraryService, size int, ttl time.Duration) *Sessions {
	return &Sessions{
		service:  service,
		browsers: expirable.NewLRU[string, *Browser](size, nil, ttl),
	}
}

// Browser returns the user's browser, creating it when absent
func (s *Sessions) Browser(ownerEmail string) *Browser {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.browsers.Get(ownerEmail); ok {
		// refresh the idle deadline
		s.browsers.Add(ownerEmail, b)
		return b
	}
	b := NewBrowser(s.service, ownerEmail)
	s.browsers.Add(ownerEmail, b)
	return b
}

// Existing returns the user's browser without creating one
func (s *Sessions) Existing(ownerEmail string) (*Browser, bool) {
	return s.browsers.Get(ownerEmail)
}

// Lookup resolves records from the user's browser, if any
func (s *Sessions) Lookup(ownerEmail string) port.RecordLookup {
	b, ok := s.Existing(ownerEmail)
	if !ok {
		return nil
	}
	return b.Lookup
}

package handoff

import (
	"imgstudio/internal/core/domain"
	"imgstudio/internal/core/port"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type handoffStore struct {
	mu      sync.Mutex
	pending *expirable.LRU[string, domain.Handoff]
	now     func() time.Time
}

// NewHandoffStore creates a store holding at most one pending handoff per user.
// Unclaimed handoffs expire after ttl.
func NewHandoffStore(size int, ttl time.Duration) port.HandoffStore {
	return &handoffStore{
		pending: expirable.NewLRU[string, domain.Handoff](size, nil, ttl),
		now:     time.Now,
	}
}

func (h *handoffStore) Put(ownerEmail string, handoff domain.Handoff) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if handoff.CreatedAt.IsZero() {
		handoff.CreatedAt = h.now().UTC()
	}
	h.pending.Add(ownerEmail, handoff)
}

func (h *handoffStore) Peek(ownerEmail string) (*domain.Handoff, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	handoff, ok := h.pending.Peek(ownerEmail)
	if !ok {
		return nil, false
	}
	return &handoff, true
}

// Take returns the pending handoff and clears it in the same critical section
func (h *handoffStore) Take(ownerEmail string) (*domain.Handoff, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	handoff, ok := h.pending.Peek(ownerEmail)
	if !ok {
		return nil, false
	}
	h.pending.Remove(ownerEmail)
	return &handoff, true
}

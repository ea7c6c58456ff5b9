package port

import "imgstudio/internal/core/domain"

// HandoffStore holds at most one pending handoff per user
type HandoffStore interface {
	Put(ownerEmail string, handoff domain.Handoff)
	Peek(ownerEmail string) (*domain.Handoff, bool)
	Take(ownerEmail string) (*domain.Handoff, bool)
}

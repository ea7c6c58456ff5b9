package domain

import "time"

// EventType is a type that represents the type of an event
type EventType string

const (
	EventTypeStorageCleanupRequested  EventType = "storage.cleanup.requested"
	EventTypeVideoGenerationCompleted EventType = "video.generation.completed"
	EventTypeVideoGenerationFailed    EventType = "video.generation.failed"
)

// StorageCleanupRequest asks a worker to retry the deletion of a storage object
type StorageCleanupRequest struct {
	URI         string    `json:"uri"`
	OwnerEmail  string    `json:"ownerEmail"`
	MediaID     string    `json:"mediaId"`
	RequestedAt time.Time `json:"requestedAt"`
}

// VideoGenerationEvent reports the outcome of a polled video operation
type VideoGenerationEvent struct {
	SessionID     string    `json:"sessionId"`
	OperationName string    `json:"operationName"`
	OwnerEmail    string    `json:"ownerEmail"`
	VideoURIs     []string  `json:"videoUris,omitempty"`
	Error         string    `json:"error,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

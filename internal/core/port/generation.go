package port

import (
	"context"
	"imgstudio/internal/core/domain"
)

// VideoStatusChecker queries the status of a video operation
type VideoStatusChecker interface {
	VideoStatus(ctx context.Context, operationName string, req domain.VideoRequest) (*domain.VideoStatus, error)
}

// GenerationClient is an interface to define generative AI interactions
type GenerationClient interface {
	VideoStatusChecker
	GenerateImages(ctx context.Context, req domain.ImageRequest) ([]domain.GeneratedMedia, error)
	StartVideo(ctx context.Context, req domain.VideoRequest) (*domain.VideoStart, error)
}

// GenerationService is an interface to define the generation service
type GenerationService interface {
	GenerateImages(ctx context.Context, ownerEmail string, values domain.FormValues) ([]domain.GeneratedMedia, error)
	GenerateVideo(ctx context.Context, ownerEmail string, sessionID string, values domain.FormValues) (*domain.VideoStart, error)
	VideoJob(ownerEmail string, sessionID string) (*domain.VideoJob, error)
	CancelVideo(ownerEmail string, sessionID string) error
	// Close stops every running poller
	Close()
}

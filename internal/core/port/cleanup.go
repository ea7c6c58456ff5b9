package port

import (
	"context"
	"imgstudio/internal/core/domain"
)

// CleanupService is service that retries storage deletions left behind by batch deletes
type CleanupService interface {
	MessageService
	Cleanup(ctx context.Context, req domain.StorageCleanupRequest) error
}

package cleanup

import (
	"imgstudio/internal/core/port"
	"log/slog"
)

type cleanupService struct {
	storage port.ObjectStorage
	logger  *slog.Logger
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(storage port.ObjectStorage, logger *slog.Logger) port.CleanupService {
	return &cleanupService{
		storage: storage,
		logger:  logger,
	}
}

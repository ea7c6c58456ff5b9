package library

import (
	"imgstudio/internal/config"
	"imgstudio/internal/core/port"
	"log/slog"
)

type libraryService struct {
	repo      port.MediaRepository
	storage   port.ObjectStorage
	publisher port.EventPublisher
	metrics   port.Metrics
	logger    *slog.Logger
	cfg       config.LibraryConfig
}

// NewLibraryService creates a new library service
func NewLibraryService(repo port.MediaRepository, storage port.ObjectStorage, publisher port.EventPublisher, metrics port.Metrics, logger *slog.Logger, cfg config.LibraryConfig) port.LibraryService {
	if publisher == nil {
		publisher = port.NopPublisher{}
	}
	if metrics == nil {
		metrics = port.NopMetrics{}
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 24
	}
	if cfg.SignConcurrency <= 0 {
		cfg.SignConcurrency = 16
	}
	if cfg.DeleteConcurrency <= 0 {
		cfg.DeleteConcurrency = 8
	}
	return &libraryService{
		repo:      repo,
		storage:   storage,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
	}
}

package port

import (
	"context"
	"imgstudio/internal/core/domain"
)

// MediaRepository is an interface to define media metadata store interactions
type MediaRepository interface {
	Create(ctx context.Context, media domain.MediaMetadata) (*domain.MediaMetadata, error)
	FindByID(ctx context.Context, ownerEmail string, id string) (*domain.MediaMetadata, error)
	FindPage(ctx context.Context, query domain.PageQuery) ([]domain.MediaMetadata, error)
	DeleteBatch(ctx context.Context, ownerEmail string, ids []string) error
}

// RecordLookup resolves a record already fetched in the caller's session
type RecordLookup func(id string) (*domain.MediaMetadata, bool)

// LibraryService is an interface to define the library service
type LibraryService interface {
	FetchPage(ctx context.Context, ownerEmail string, filter domain.LibraryFilter, cursor *domain.Cursor) (*domain.LibraryPage, error)
	DeleteBatch(ctx context.Context, ownerEmail string, ids []string, lookup RecordLookup) error
	Export(ctx context.Context, ownerEmail string, req domain.ExportRequest) (*domain.MediaMetadata, error)
	Download(ctx context.Context, ownerEmail string, id string) (string, domain.MediaFormat, error)
}

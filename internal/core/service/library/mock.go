package library

import (
	"context"
	"imgstudio/internal/core/domain"
	"imgstudio/internal/core/port"

	"github.com/stretchr/testify/mock"
)

// MockLibraryService is a mock implementation of LibraryService
type MockLibraryService struct {
	mock.Mock
}

// NewMockLibraryService creates a new MockLibraryService
func NewMockLibraryService() *MockLibraryService {
	return &MockLibraryService{}
}

func (m *MockLibraryService) FetchPage(ctx context.Context, ownerEmail string, filter domain.LibraryFilter, cursor *domain.Cursor) (*domain.LibraryPage, error) {
	args := m.Called(ctx, ownerEmail, filter, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LibraryPage), args.Error(1)
}

func (m *MockLibraryService) DeleteBatch(ctx context.Context, ownerEmail string, ids []string, lookup port.RecordLookup) error {
	args := m.Called(ctx, ownerEmail, ids, lookup)
	return args.Error(0)
}

func (m *MockLibraryService) Export(ctx context.Context, ownerEmail string, req domain.ExportRequest) (*domain.MediaMetadata, error) {
	args := m.Called(ctx, ownerEmail, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaMetadata), args.Error(1)
}

func (m *MockLibraryService) Download(ctx context.Context, ownerEmail string, id string) (string, domain.MediaFormat, error) {
	args := m.Called(ctx, ownerEmail, id)
	return args.String(0), args.Get(1).(domain.MediaFormat), args.Error(2)
}

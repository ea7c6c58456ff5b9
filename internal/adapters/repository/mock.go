package repository

import (
	"context"
	"imgstudio/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockMediaRepository struct {
	mock.Mock
}

func NewMockMediaRepository() *MockMediaRepository {
	return &MockMediaRepository{}
}

func (m *MockMediaRepository) Create(ctx context.Context, media domain.MediaMetadata) (*domain.MediaMetadata, error) {
	args := m.Called(ctx, media)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaMetadata), args.Error(1)
}

func (m *MockMediaRepository) FindByID(ctx context.Context, ownerEmail string, id string) (*domain.MediaMetadata, error) {
	args := m.Called(ctx, ownerEmail, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaMetadata), args.Error(1)
}

func (m *MockMediaRepository) FindPage(ctx context.Context, query domain.PageQuery) ([]domain.MediaMetadata, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MediaMetadata), args.Error(1)
}

func (m *MockMediaRepository) DeleteBatch(ctx context.Context, ownerEmail string, ids []string) error {
	args := m.Called(ctx, ownerEmail, ids)
	return args.Error(0)
}

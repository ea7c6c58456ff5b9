package generation

import (
	"context"
	"imgstudio/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockGenerationClient struct {
	mock.Mock
}

func NewMockGenerationClient() *MockGenerationClient {
	return &MockGenerationClient{}
}

func (m *MockGenerationClient) GenerateImages(ctx context.Context, req domain.ImageRequest) ([]domain.GeneratedMedia, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedMedia), args.Error(1)
}

func (m *MockGenerationClient) StartVideo(ctx context.Context, req domain.VideoRequest) (*domain.VideoStart, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VideoStart), args.Error(1)
}

func (m *MockGenerationClient) VideoStatus(ctx context.Context, operationName string, req domain.VideoRequest) (*domain.VideoStatus, error) {
	args := m.Called(ctx, operationName, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VideoStatus), args.Error(1)
}

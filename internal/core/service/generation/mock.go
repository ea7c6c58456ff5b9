package generation

import (
	"context"
	"imgstudio/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockGenerationService is a mock implementation of GenerationService
type MockGenerationService struct {
	mock.Mock
}

// NewMockGenerationService creates a new MockGenerationService
func NewMockGenerationService() *MockGenerationService {
	return &MockGenerationService{}
}

func (m *MockGenerationService) GenerateImages(ctx context.Context, ownerEmail string, values domain.FormValues) ([]domain.GeneratedMedia, error) {
	args := m.Called(ctx, ownerEmail, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedMedia), args.Error(1)
}

func (m *MockGenerationService) GenerateVideo(ctx context.Context, ownerEmail string, sessionID string, values domain.FormValues) (*domain.VideoStart, error) {
	args := m.Called(ctx, ownerEmail, sessionID, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VideoStart), args.Error(1)
}

func (m *MockGenerationService) VideoJob(ownerEmail string, sessionID string) (*domain.VideoJob, error) {
	args := m.Called(ownerEmail, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VideoJob), args.Error(1)
}

func (m *MockGenerationService) CancelVideo(ownerEmail string, sessionID string) error {
	args := m.Called(ownerEmail, sessionID)
	return args.Error(0)
}

func (m *MockGenerationService) Close() {
	m.Called()
}

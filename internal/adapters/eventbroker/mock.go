package eventbroker

import (
	"context"
	"imgstudio/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockPublisher struct {
	mock.Mock
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, eventType domain.EventType, payload any) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}

package storage

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (m *MockStorage) SignedURL(ctx context.Context, uri string) (string, error) {
	args := m.Called(ctx, uri)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) Download(ctx context.Context, uri string) (string, error) {
	args := m.Called(ctx, uri)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) Upload(ctx context.Context, data []byte, destination string, contentType string) (string, error) {
	args := m.Called(ctx, data, destination, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, uri string) error {
	args := m.Called(ctx, uri)
	return args.Error(0)
}

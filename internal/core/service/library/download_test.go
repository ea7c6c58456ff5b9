package library_test

import (
	"context"
	"testing"

	"imgstudio/internal/adapters/repository"
	"imgstudio/internal/adapters/storage"
	"imgstudio/internal/core/domain"
	"imgstudio/internal/core/service/library"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLibraryService_Download(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		mockRepo := repository.NewMockMediaRepository()
		mockStorage := storage.NewMockStorage()
		service := library.NewLibraryService(mockRepo, mockStorage, nil, nil, testLogger(), libraryConfig())

		record := domain.MediaMetadata{ID: "id1", OwnerEmail: owner, StorageURI: "gs://bucket/a.jpg", Format: domain.MediaFormatJPEG}
		mockRepo.On("FindByID", ctx, owner, "id1").Return(&record, nil).Once()
		mockStorage.On("Download", ctx, record.StorageURI).Return("aGVsbG8=", nil).Once()

		// Act
		data, format, err := service.Download(ctx, owner, "id1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "aGVsbG8=", data)
		assert.Equal(t, domain.MediaFormatJPEG, format)
	})

	t.Run("error - unknown media", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := repository.NewMockMediaRepository()
		mockStorage := storage.NewMockStorage()
		service := library.NewLibraryService(mockRepo, mockStorage, nil, nil, testLogger(), libraryConfig())

		mockRepo.On("FindByID", ctx, owner, "nope").Return(nil, domain.ErrMediaNotFound).Once()

		_, _, err := service.Download(ctx, owner, "nope")

		assert.ErrorIs(t, err, domain.ErrMediaNotFound)
		mockStorage.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
	})

	t.Run("error - foreign media", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := repository.NewMockMediaRepository()
		mockStorage := storage.NewMockStorage()
		service := library.NewLibraryService(mockRepo, mockStorage, nil, nil, testLogger(), libraryConfig())

		record := domain.MediaMetadata{ID: "id2", OwnerEmail: "bob@example.com", StorageURI: "gs://bucket/b.png"}
		mockRepo.On("FindByID", ctx, owner, "id2").Return(&record, nil).Once()

		_, _, err := service.Download(ctx, owner, "id2")

		assert.ErrorIs(t, err, domain.ErrMediaNotFound)
		mockStorage.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
	})
}

package library_test

import (
	"context"
	"errors"
	"testing"

	"imgstudio/internal/adapters/eventbroker"
	"imgstudio/internal/adapters/metrics"
	"imgstudio/internal/adapters/repository"
	"imgstudio/internal/adapters/storage"
	"imgstudio/internal/core/domain"
	"imgstudio/internal/core/port"
	"imgstudio/internal/core/service/library"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func lookupOf(records ...domain.MediaMetadata) port.RecordLookup {
	return func(id string) (*domain.MediaMetadata, bool) {
		for _, r := range records {
			if r.ID == id {
				return &r, true
			}
		}
		return nil, false
	}
}

func TestLibraryService_DeleteBatch_SkipsForeignRecords(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockMediaRepository()
	mockStorage := storage.NewMockStorage()
	mockMetrics := metrics.NewMockMetrics()
	service := library.NewLibraryService(mockRepo, mockStorage, nil, mockMetrics, testLogger(), libraryConfig())

	own := domain.MediaMetadata{ID: "id1", OwnerEmail: owner, StorageURI: "gs://bucket/alice/1.png"}
	foreign := domain.MediaMetadata{ID: "id2", OwnerEmail: "bob@example.com", StorageURI: "gs://bucket/bob/2.png"}

	mockStorage.On("Delete", ctx, own.StorageURI).Return(nil).Once()
	mockRepo.On("DeleteBatch", ctx, owner, []string{"id1"}).Return(nil).Once()
	mockMetrics.On("OwnershipViolation").Return().Once()

	// Act
	err := service.DeleteBatch(ctx, owner, []string{"id1", "id2"}, lookupOf(own, foreign))

	// Assert
	assert.NoError(t, err)
	mockStorage.AssertExpectations(t)
	mockStorage.AssertNotCalled(t, "Delete", ctx, foreign.StorageURI)
	mockRepo.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}

func TestLibraryService_DeleteBatch_Empty(t *testing.T) {
	mockRepo := repository.NewMockMediaRepository()
	mockStorage := storage.NewMockStorage()
	service := library.NewLibraryService(mockRepo, mockStorage, nil, nil, testLogger(), libraryConfig())

	err := service.DeleteBatch(context.Background(), owner, nil, nil)

	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "DeleteBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestLibraryService_DeleteBatch_AllForeign(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockMediaRepository()
	mockStorage := storage.NewMockStorage()
	service := library.NewLibraryService(mockRepo, mockStorage, nil, nil, testLogger(), libraryConfig())

	foreign := domain.MediaMetadata{ID: "id2", OwnerEmail: "bob@example.com", StorageURI: "gs://bucket/bob/2.png"}

	// Act
	err := service.DeleteBatch(ctx, owner, []string{"id2"}, lookupOf(foreign))

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "DeleteBatch", mock.Anything, mock.Anything, mock.Anything)
	mockStorage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestLibraryService_DeleteBatch_UnknownIdsAreIdempotent(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockMediaRepository()
	mockStorage := storage.NewMockStorage()
	service := library.NewLibraryService(mockRepo, mockStorage, nil, nil, testLogger(), libraryConfig())

	mockRepo.On("DeleteBatch", ctx, owner, []string{"gone-1", "gone-2"}).Return(nil).Twice()

	// Act
	first := service.DeleteBatch(ctx, owner, []string{"gone-1", "gone-2", "gone-1"}, nil)
	second := service.DeleteBatch(ctx, owner, []string{"gone-1", "gone-2"}, nil)

	// Assert
	assert.NoError(t, first)
	assert.NoError(t, second)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
	mockStorage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestLibraryService_DeleteBatch_UnseenIdSkipsStorage(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockMediaRepository()
	mockStorage := storage.NewMockStorage()
	service := library.NewLibraryService(mockRepo, mockStorage, nil, nil, testLogger(), libraryConfig())

	seen := domain.MediaMetadata{ID: "img", OwnerEmail: owner, StorageURI: "gs://bucket/alice/i.png"}

	mockStorage.On("Delete", ctx, seen.StorageURI).Return(nil).Once()
	mockRepo.On("DeleteBatch", ctx, owner, []string{"img", "vid"}).Return(nil).Once()

	// Act
	err := service.DeleteBatch(ctx, owner, []string{"img", "vid"}, lookupOf(seen))

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
	mockStorage.AssertExpectations(t)
	mockStorage.AssertNumberOfCalls(t, "Delete", 1)
}

func TestLibraryService_DeleteBatch_StoredButUnseenRecordKeepsItsObjects(t *testing.T) {
	// Arrange
	ctx := context.Background()
	video := domain.MediaMetadata{
		ID:                "vid",
		OwnerEmail:        owner,
		Format:            domain.MediaFormatMP4,
		StorageURI:        "gs://bucket/alice/v.mp4",
		VideoThumbnailURI: "gs://bucket/alice/v.png",
	}
	repo := newMemoryRepository(video)
	mockStorage := storage.NewMockStorage()
	service := library.NewLibraryService(repo, mockStorage, nil, nil, testLogger(), libraryConfig())

	// Act
	err := service.DeleteBatch(ctx, owner, []string{"vid"}, nil)

	// Assert
	assert.NoError(t, err)
	mockStorage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	_, findErr := repo.FindByID(ctx, owner, "vid")
	assert.ErrorIs(t, findErr, domain.ErrMediaNotFound)
}

func TestLibraryService_DeleteBatch_StorageFailureQueuesCleanup(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockMediaRepository()
	mockStorage := storage.NewMockStorage()
	mockPublisher := eventbroker.NewMockPublisher()
	service := library.NewLibraryService(mockRepo, mockStorage, mockPublisher, nil, testLogger(), libraryConfig())

	record := domain.MediaMetadata{ID: "id1", OwnerEmail: owner, StorageURI: "gs://bucket/alice/1.png"}

	mockStorage.On("Delete", ctx, record.StorageURI).Return(errors.New("timeout")).Once()
	mockPublisher.On("Publish", ctx, domain.EventTypeStorageCleanupRequested, mock.MatchedBy(func(req domain.StorageCleanupRequest) bool {
		return req.URI == record.StorageURI && req.OwnerEmail == owner && req.MediaID == "id1" && !req.RequestedAt.IsZero()
	})).Return(nil).Once()
	mockRepo.On("DeleteBatch", ctx, owner, []string{"id1"}).Return(nil).Once()

	// Act
	err := service.DeleteBatch(ctx, owner, []string{"id1"}, lookupOf(record))

	// Assert
	assert.NoError(t, err)
	mockPublisher.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestLibraryService_DeleteBatch_CommitFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repository.NewMockMediaRepository()
	mockStorage := storage.NewMockStorage()
	service := library.NewLibraryService(mockRepo, mockStorage, nil, nil, testLogger(), libraryConfig())

	records := []domain.MediaMetadata{
		{ID: "id1", OwnerEmail: owner, StorageURI: "gs://bucket/alice/1.png"},
		{ID: "id2", OwnerEmail: owner, StorageURI: "gs://bucket/alice/2.png"},
	}
	dbErr := errors.New("transaction aborted")

	mockStorage.On("Delete", ctx, mock.Anything).Return(nil)
	mockRepo.On("DeleteBatch", ctx, owner, []string{"id1", "id2"}).Return(dbErr).Once()

	// Act
	err := service.DeleteBatch(ctx, owner, []string{"id1", "id2"}, lookupOf(records...))

	// Assert
	assert.ErrorIs(t, err, domain.ErrBatchDeleteFailed)
	assert.ErrorIs(t, err, dbErr)
	mockStorage.AssertNumberOfCalls(t, "Delete", 2)
}

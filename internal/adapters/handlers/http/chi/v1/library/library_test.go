package library_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	http2 "net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"imgstudio/internal/adapters/handlers/http/chi"
	library3 "imgstudio/internal/adapters/handlers/http/chi/v1/library"
	"imgstudio/internal/config"
	"imgstudio/internal/core/domain"
	"imgstudio/internal/core/port"
	"imgstudio/internal/core/service/library"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	identityHeader = "X-Goog-Authenticated-User-Email"
	alice          = "alice@example.com"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newRouter(service *library.MockLibraryService) (http2.Handler, *library.Sessions) {
	sessions := library.NewSessions(service, 16, time.Hour)
	handler := library3.NewLibraryHandlerV1(service, sessions, discardLogger)
	return chi.NewRouter(discardLogger, config.Env{Env: "test"}, config.IdentityConfig{Header: identityHeader}, chi.Handlers{Library: handler}), sessions
}

func request(method string, target string, body any) *http2.Request {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(identityHeader, "accounts.google.com:"+alice)
	return req
}

func item(id string) domain.LibraryItem {
	return domain.LibraryItem{
		MediaMetadata: domain.MediaMetadata{
			ID:         id,
			OwnerEmail: alice,
			StorageURI: "gs://bucket/" + id + ".png",
			Timestamp:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
			Mode:       domain.CreationModeGenerated,
			Format:     domain.MediaFormatPNG,
		},
		SignedURL: "https://signed/" + id,
	}
}

func decodePage(t *testing.T, body io.Reader) library3.V1LibraryPageResponse {
	t.Helper()
	var resp library3.V1LibraryPageResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestListV1(t *testing.T) {
	t.Run("success - filtered page with cursor", func(t *testing.T) {
		// Arrange
		cursor := &domain.Cursor{ID: "m-9", TimestampMillis: 1740830400000}
		next := &domain.Cursor{ID: "m-1", TimestampMillis: 1740830300000}
		filter := domain.LibraryFilter{"aspectRatio": {"16:9", "1:1"}, "mode": {"Generated"}}

		mockService := library.NewMockLibraryService()
		mockService.On("FetchPage", mock.Anything, alice, filter, cursor).
			Return(&domain.LibraryPage{Items: []domain.LibraryItem{item("m-2"), item("m-1")}, NextCursor: next, HasMore: true}, nil)

		h, _ := newRouter(mockService)
		w := httptest.NewRecorder()

		query := url.Values{}
		query.Set("cursor", cursor.Encode())
		query.Add("filter", "aspectRatio:16:9")
		query.Add("filter", "aspectRatio:1:1")
		query.Add("filter", "mode:Generated")
		req := request(http2.MethodGet, "/api/v1/library?"+query.Encode(), nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		resp := decodePage(t, w.Body)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "m-2", resp.Items[0].ID)
		assert.Equal(t, "https://signed/m-2", resp.Items[0].SignedURL)
		assert.True(t, resp.HasMore)
		assert.Equal(t, next.Encode(), resp.NextCursor)

		mockService.AssertExpectations(t)
	})

	t.Run("error - invalid cursor", func(t *testing.T) {
		// Arrange
		mockService := library.NewMockLibraryService()
		h, _ := newRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, request(http2.MethodGet, "/api/v1/library?cursor=%25%25", nil))

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "FetchPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("error - malformed filter", func(t *testing.T) {
		// Arrange
		mockService := library.NewMockLibraryService()
		h, _ := newRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, request(http2.MethodGet, "/api/v1/library?filter=aspectRatio", nil))

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
	})

	t.Run("error - legacy records", func(t *testing.T) {
		// Arrange
		mockService := library.NewMockLibraryService()
		mockService.On("FetchPage", mock.Anything, alice, mock.Anything, mock.Anything).Return(nil, domain.ErrLegacyDataMigrationRequired)
		h, _ := newRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, request(http2.MethodGet, "/api/v1/library", nil))

		// Assert
		assert.Equal(t, http2.StatusConflict, w.Code)
	})

	t.Run("error - too many filter values", func(t *testing.T) {
		// Arrange
		mockService := library.NewMockLibraryService()
		mockService.On("FetchPage", mock.Anything, alice, mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: 31 selected", domain.ErrTooManyFilterValues))
		h, _ := newRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, request(http2.MethodGet, "/api/v1/library", nil))

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
	})

	t.Run("error - missing identity", func(t *testing.T) {
		// Arrange
		mockService := library.NewMockLibraryService()
		h, _ := newRouter(mockService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http2.MethodGet, "/api/v1/library", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusUnauthorized, w.Code)
		mockService.AssertNotCalled(t, "FetchPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBrowseV1(t *testing.T) {
	t.Run("success - load more concatenates pages", func(t *testing.T) {
		// Arrange
		filter := domain.LibraryFilter{"mode": {"Generated"}}
		first := &domain.Cursor{ID: "m-2", TimestampMillis: 2000}

		mockService := library.NewMockLibraryService()
		mockService.On("FetchPage", mock.Anything, alice, filter, (*domain.Cursor)(nil)).
			Return(&domain.LibraryPage{Items: []domain.LibraryItem{item("m-3"), item("m-2")}, NextCursor: first, HasMore: true}, nil).Once()
		mockService.On("FetchPage", mock.Anything, alice, filter, first).
			Return(&domain.LibraryPage{Items: []domain.LibraryItem{item("m-1")}, HasMore: false}, nil).Once()

		h, _ := newRouter(mockService)

		// Act
		w1 := httptest.NewRecorder()
		h.ServeHTTP(w1, request(http2.MethodPost, "/api/v1/library/browse", library3.V1BrowseRequest{Filters: filter}))
		w2 := httptest.NewRecorder()
		h.ServeHTTP(w2, request(http2.MethodPost, "/api/v1/library/browse/more", nil))
		w3 := httptest.NewRecorder()
		h.ServeHTTP(w3, request(http2.MethodPost, "/api/v1/library/browse/more", nil))

		// Assert
		require.Equal(t, http2.StatusOK, w1.Code)
		assert.Len(t, decodePage(t, w1.Body).Items, 2)

		require.Equal(t, http2.StatusOK, w2.Code)
		more := decodePage(t, w2.Body)
		require.Len(t, more.Items, 3)
		assert.Equal(t, "m-1", more.Items[2].ID)
		assert.False(t, more.HasMore)

		require.Equal(t, http2.StatusOK, w3.Code)
		assert.Len(t, decodePage(t, w3.Body).Items, 3)
		mockService.AssertNumberOfCalls(t, "FetchPage", 2)
	})
}

func TestDeleteV1(t *testing.T) {
	t.Run("success - resolves from the browse session and forgets deleted items", func(t *testing.T) {
		// Arrange
		mockService := library.NewMockLibraryService()
		mockService.On("FetchPage", mock.Anything, alice, domain.LibraryFilter{}, (*domain.Cursor)(nil)).
			Return(&domain.LibraryPage{Items: []domain.LibraryItem{item("m-2"), item("m-1")}}, nil).Once()
		mockService.On("DeleteBatch", mock.Anything, alice, []string{"m-1"}, mock.MatchedBy(func(lookup port.RecordLookup) bool {
			if lookup == nil {
				return false
			}
			record, ok := lookup("m-1")
			return ok && record.StorageURI == "gs://bucket/m-1.png"
		})).Return(nil).Once()

		h, sessions := newRouter(mockService)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, request(http2.MethodPost, "/api/v1/library/browse", library3.V1BrowseRequest{Filters: map[string][]string{}}))
		require.Equal(t, http2.StatusOK, w.Code)

		// Act
		w = httptest.NewRecorder()
		h.ServeHTTP(w, request(http2.MethodPost, "/api/v1/library/delete", library3.V1DeleteRequest{IDs: []string{"m-1"}}))

		// Assert
		assert.Equal(t, http2.StatusNoContent, w.Code)
		browser, ok := sessions.Existing(alice)
		require.True(t, ok)
		view := browser.View()
		require.Len(t, view.Items, 1)
		assert.Equal(t, "m-2", view.Items[0].ID)
		mockService.AssertExpectations(t)
	})

	t.Run("success - no browse session", func(t *testing.T) {
		// Arrange
		mockService := library.NewMockLibraryService()
		mockService.On("DeleteBatch", mock.Anything, alice, []string{"m-1", "m-2"}, mock.Anything).Return(nil).Once()
		h, _ := newRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, request(http2.MethodPost, "/api/v1/library/delete", library3.V1DeleteRequest{IDs: []string{"m-1", "m-2"}}))

		// Assert
		assert.Equal(t, http2.StatusNoContent, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("error - commit failed", func(t *testing.T) {
		// Arrange
		mockService := library.NewMockLibraryService()
		mockService.On("DeleteBatch", mock.Anything, alice, mock.Anything, mock.Anything).
			Return(fmt.Errorf("%w: connection reset", domain.ErrBatchDeleteFailed))
		h, _ := newRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, request(http2.MethodPost, "/api/v1/library/delete", library3.V1DeleteRequest{IDs: []string{"m-1"}}))

		// Assert
		assert.Equal(t, http2.StatusServiceUnavailable, w.Code)
	})

	t.Run("error - invalid body", func(t *testing.T) {
		// Arrange
		mockService := library.NewMockLibraryService()
		h, _ := newRouter(mockService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http2.MethodPost, "/api/v1/library/delete", bytes.NewBufferString("{"))
		req.Header.Set(identityHeader, "accounts.google.com:"+alice)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
	})
}

func TestExportV1(t *testing.T) {
	t.Run("success - created", func(t *testing.T) {
		// Arrange
		saved := item("m-new").MediaMetadata
		mockService := library.NewMockLibraryService()
		mockService.On("Export", mock.Anything, alice, mock.MatchedBy(func(req domain.ExportRequest) bool {
			return req.Kind == domain.GenerationKindImage && req.StorageURI == "gs://bucket/out/1.png" && req.Form.String("prompt") == "a fox"
		})).Return(&saved, nil).Once()

		h, _ := newRouter(mockService)
		w := httptest.NewRecorder()
		body := library3.V1ExportRequest{
			Kind:       "image",
			StorageURI: "gs://bucket/out/1.png",
			Form:       map[string]any{"prompt": "a fox", "modelVersion": "imagen-4.0-generate-001", "aspectRatio": "1:1"},
		}

		// Act
		h.ServeHTTP(w, request(http2.MethodPost, "/api/v1/library", body))

		// Assert
		assert.Equal(t, http2.StatusCreated, w.Code)
		var resp library3.V1MediaItem
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "m-new", resp.ID)
		mockService.AssertExpectations(t)
	})

	t.Run("error - invalid form", func(t *testing.T) {
		// Arrange
		mockService := library.NewMockLibraryService()
		mockService.On("Export", mock.Anything, alice, mock.Anything).Return(nil, fmt.Errorf("%w: prompt is required", domain.ErrInvalidForm))
		h, _ := newRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, request(http2.MethodPost, "/api/v1/library", library3.V1ExportRequest{Kind: "image", StorageURI: "gs://bucket/x.png"}))

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "prompt is required")
	})
}

func TestDownloadV1(t *testing.T) {
	t.Run("success - base64 payload", func(t *testing.T) {
		// Arrange
		mockService := library.NewMockLibraryService()
		mockService.On("Download", mock.Anything, alice, "m-1").Return("aGVsbG8=", domain.MediaFormatJPEG, nil)
		h, _ := newRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, request(http2.MethodGet, "/api/v1/library/m-1/download", nil))

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		var resp library3.V1DownloadResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "aGVsbG8=", resp.Data)
		assert.Equal(t, "JPEG", resp.Format)
		assert.Equal(t, "image/jpeg", resp.ContentType)
	})

	t.Run("error - not found", func(t *testing.T) {
		// Arrange
		mockService := library.NewMockLibraryService()
		mockService.On("Download", mock.Anything, alice, "m-9").Return("", domain.MediaFormat(""), domain.ErrMediaNotFound)
		h, _ := newRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, request(http2.MethodGet, "/api/v1/library/m-9/download", nil))

		// Assert
		assert.Equal(t, http2.StatusNotFound, w.Code)
	})
}

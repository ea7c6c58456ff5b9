package generation_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	http2 "net/http"
	"net/http/httptest"
	"testing"

	"imgstudio/internal/adapters/handlers/http/chi"
	generation3 "imgstudio/internal/adapters/handlers/http/chi/v1/generation"
	"imgstudio/internal/config"
	"imgstudio/internal/core/domain"
	"imgstudio/internal/core/service/generation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	identityHeader = "X-Goog-Authenticated-User-Email"
	alice          = "alice@example.com"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newRouter(service *generation.MockGenerationService) http2.Handler {
	handler := generation3.NewGenerationHandlerV1(service, discardLogger)
	return chi.NewRouter(discardLogger, config.Env{Env: "test"}, config.IdentityConfig{Header: identityHeader}, chi.Handlers{Generation: handler})
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

func imageValues() map[string]any {
	return map[string]any{"prompt": "a red fox", "modelVersion": "imagen-4.0-generate-001", "aspectRatio": "1:1"}
}

func TestGenerateImagesV1(t *testing.T) {
	t.Run("success - results", func(t *testing.T) {
		// Arrange
		mockService := generation.NewMockGenerationService()
		mockService.On("GenerateImages", mock.Anything, alice, domain.FormValues(imageValues())).
			Return([]domain.GeneratedMedia{{URI: "gs://bucket/out/1.png", MimeType: "image/png", Prompt: "a red fox"}}, nil)
		h := newRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, request(http2.MethodPost, "/api/v1/generation/image", generation3.V1GenerateRequest{Values: imageValues()}))

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		var resp generation3.V1GenerateImagesResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "gs://bucket/out/1.png", resp.Results[0].URI)
		mockService.AssertExpectations(t)
	})

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{name: "error - invalid form", err: fmt.Errorf("%w: prompt is required", domain.ErrInvalidForm), status: http2.StatusBadRequest, body: "prompt is required"},
		{name: "error - all filtered", err: fmt.Errorf("%w: blocked by safety filters", domain.ErrNoValidResults), status: http2.StatusBadGateway, body: "blocked by safety filters"},
		{name: "error - upstream failure", err: fmt.Errorf("failed to generate images: %w", fmt.Errorf("Error: Error: quota exceeded")), status: http2.StatusBadGateway, body: "quota exceeded"},
		{name: "error - breaker open", err: fmt.Errorf("%w: circuit breaker is open", domain.ErrUpstreamUnavailable), status: http2.StatusServiceUnavailable, body: domain.ErrUpstreamUnavailable.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			mockService := generation.NewMockGenerationService()
			mockService.On("GenerateImages", mock.Anything, alice, mock.Anything).Return(nil, tt.err)
			h := newRouter(mockService)
			w := httptest.NewRecorder()

			// Act
			h.ServeHTTP(w, request(http2.MethodPost, "/api/v1/generation/image", generation3.V1GenerateRequest{Values: imageValues()}))

			// Assert
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Contains(t, w.Body.String(), tt.body)
			}
			assert.NotContains(t, w.Body.String(), "Error:")
		})
	}
}

func TestGenerateVideoV1(t *testing.T) {
	t.Run("success - polling started from header session", func(t *testing.T) {
		// Arrange
		mockService := generation.NewMockGenerationService()
		mockService.On("GenerateVideo", mock.Anything, alice, "session-1", mock.Anything).
			Return(&domain.VideoStart{OperationName: "op-1"}, nil)
		h := newRouter(mockService)
		w := httptest.NewRecorder()
		req := request(http2.MethodPost, "/api/v1/generation/video", generation3.V1GenerateRequest{SessionID: "ignored", Values: map[string]any{"prompt": "waves"}})
		req.Header.Set(generation3.SessionHeader, "session-1")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusAccepted, w.Code)
		var resp generation3.V1GenerateVideoResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "session-1", resp.SessionID)
		assert.Equal(t, "op-1", resp.OperationName)
		mockService.AssertExpectations(t)
	})

	t.Run("success - immediate videos from body session", func(t *testing.T) {
		// Arrange
		mockService := generation.NewMockGenerationService()
		mockService.On("GenerateVideo", mock.Anything, alice, "session-2", mock.Anything).
			Return(&domain.VideoStart{Videos: []domain.GeneratedMedia{{URI: "gs://bucket/v.mp4", MimeType: "video/mp4"}}}, nil)
		h := newRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, request(http2.MethodPost, "/api/v1/generation/video", generation3.V1GenerateRequest{SessionID: "session-2", Values: map[string]any{"prompt": "waves"}}))

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		var resp generation3.V1GenerateVideoResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp.Videos, 1)
		assert.Equal(t, "gs://bucket/v.mp4", resp.Videos[0].URI)
	})

	t.Run("error - session of another user", func(t *testing.T) {
		// Arrange
		mockService := generation.NewMockGenerationService()
		mockService.On("GenerateVideo", mock.Anything, alice, "session-3", mock.Anything).Return(nil, domain.ErrSessionNotFound)
		h := newRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, request(http2.MethodPost, "/api/v1/generation/video", generation3.V1GenerateRequest{SessionID: "session-3"}))

		// Assert
		assert.Equal(t, http2.StatusNotFound, w.Code)
	})
}

func TestVideoJobV1(t *testing.T) {
	t.Run("success - failed job", func(t *testing.T) {
		// Arrange
		mockService := generation.NewMockGenerationService()
		mockService.On("VideoJob", alice, "session-1").Return(&domain.VideoJob{
			SessionID:     "session-1",
			State:         domain.PollingStateFailed,
			OperationName: "op-1",
			Attempts:      30,
			Error:         domain.ErrPollingTimeout.Error(),
		}, nil)
		h := newRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, request(http2.MethodGet, "/api/v1/generation/video/session-1", nil))

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		var resp generation3.V1VideoJobResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Failed", resp.State)
		assert.Equal(t, 30, resp.Attempts)
		assert.Equal(t, domain.ErrPollingTimeout.Error(), resp.Error)
	})

	t.Run("error - unknown session", func(t *testing.T) {
		// Arrange
		mockService := generation.NewMockGenerationService()
		mockService.On("VideoJob", alice, "missing").Return(nil, domain.ErrSessionNotFound)
		h := newRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, request(http2.MethodGet, "/api/v1/generation/video/missing", nil))

		// Assert
		assert.Equal(t, http2.StatusNotFound, w.Code)
	})

	t.Run("success - cancel", func(t *testing.T) {
		// Arrange
		mockService := generation.NewMockGenerationService()
		mockService.On("CancelVideo", alice, "session-1").Return(nil).Once()
		h := newRouter(mockService)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, request(http2.MethodDelete, "/api/v1/generation/video/session-1", nil))

		// Assert
		assert.Equal(t, http2.StatusNoContent, w.Code)
		mockService.AssertExpectations(t)
	})
}

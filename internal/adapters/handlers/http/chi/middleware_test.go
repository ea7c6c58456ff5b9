package chi_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"imgstudio/internal/adapters/handlers/http/chi"
	"imgstudio/internal/adapters/handlers/http/httpx"
	"imgstudio/internal/config"

	"github.com/stretchr/testify/assert"
)

const identityHeader = "X-Goog-Authenticated-User-Email"

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(httpx.User(r.Context())))
	})
}

func TestIdentityMiddleware(t *testing.T) {
	identity := config.IdentityConfig{Header: identityHeader, DevUserEmail: "dev@example.com"}

	tests := []struct {
		name   string
		env    string
		header string
		status int
		user   string
	}{
		{name: "success - proxy header", env: "prod", header: "accounts.google.com:Alice@Example.com", status: http.StatusOK, user: "alice@example.com"},
		{name: "success - dev user outside prod", env: "DEV", status: http.StatusOK, user: "dev@example.com"},
		{name: "success - header wins over dev user", env: "DEV", header: "accounts.google.com:bob@example.com", status: http.StatusOK, user: "bob@example.com"},
		{name: "error - missing header in prod", env: "prod", status: http.StatusUnauthorized},
		{name: "error - unparseable header", env: "prod", header: "accounts.google.com:not-an-email", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			h := chi.IdentityMiddleware(logger, config.Env{Env: tt.env}, identity)(echoUser())
			req := httptest.NewRequest(http.MethodGet, "/api/v1/library", nil)
			if tt.header != "" {
				req.Header.Set(identityHeader, tt.header)
			}
			w := httptest.NewRecorder()

			// Act
			h.ServeHTTP(w, req)

			// Assert
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.user, w.Body.String())
			} else {
				assert.Contains(t, logs.String(), "security:")
			}
		})
	}
}

func TestRouter_PublicRoutes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})
	h := chi.NewRouter(logger, config.Env{Env: "prod"}, config.IdentityConfig{Header: identityHeader}, chi.Handlers{Metrics: metrics})

	for _, path := range []string{"/health", "/metrics"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

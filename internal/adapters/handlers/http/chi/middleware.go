package chi

import (
	"log/slog"
	"net/http"
	"time"

	"imgstudio/internal/adapters/handlers/http/httpx"
	"imgstudio/internal/config"
	"imgstudio/internal/core/domain"

	"github.com/go-chi/chi/v5/middleware"
)

// LoggerMiddleware is a custom logging middleware
func LoggerMiddleware(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				if r.URL.Path != "/health" && r.URL.Path != "/metrics" {

					l.Info("http_request",
						"request_id", middleware.GetReqID(r.Context()),
						"method", r.Method,
						"path", r.URL.Path,
						"status", ww.Status(),
						"duration", time.Since(start),
					)
				}
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// IdentityMiddleware authenticates requests from the identity aware proxy header.
// Outside prod a configured dev user stands in when the header is absent.
func IdentityMiddleware(l *slog.Logger, env config.Env, cfg config.IdentityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value := r.Header.Get(cfg.Header)
			if value == "" && !env.IsProd() && cfg.DevUserEmail != "" {
				value = cfg.DevUserEmail
			}

			email, err := domain.ParseIdentityHeader(value)
			if err != nil {
				l.Error("security: unauthenticated request rejected",
					"request_id", middleware.GetReqID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"error", err,
				)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(httpx.WithUser(r.Context(), email)))
		})
	}
}

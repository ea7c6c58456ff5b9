package chi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"imgstudio/internal/adapters/handlers/http/chi/v1/generation"
	"imgstudio/internal/adapters/handlers/http/chi/v1/handoff"
	"imgstudio/internal/adapters/handlers/http/chi/v1/library"
	"imgstudio/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers groups what the router mounts. Nil handlers are not mounted.
type Handlers struct {
	Library    *library.HandlerV1
	Generation *generation.HandlerV1
	Handoff    *handoff.HandlerV1
	Metrics    http.Handler
}

// NewRouter builds http.Handler with chi
func NewRouter(logger *slog.Logger, env config.Env, identity config.IdentityConfig, handlers Handlers) http.Handler {
	r := chi.NewRouter()

	//handle requestID to facilitate debug (X-Request-ID)
	//It fetches from request if exists, or creates it
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.RequestSize(20 << 20)) //20mb, inline reference images

	if !env.IsProd() {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", generation.SessionHeader, identity.Header},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(IdentityMiddleware(logger, env, identity))

		if handlers.Library != nil {
			r.Mount("/library", handlers.Library.Routes())
		}
		if handlers.Generation != nil {
			r.Mount("/generation", handlers.Generation.Routes())
		}
		if handlers.Handoff != nil {
			r.Mount("/handoff", handlers.Handoff.Routes())
		}
	})

	if handlers.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", handlers.Metrics)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	})

	return r
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

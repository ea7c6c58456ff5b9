package generation

import (
	"log/slog"

	"imgstudio/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// SessionHeader carries the form session a video generation belongs to
const SessionHeader = "X-Form-Session"

// HandlerV1 is the handler for v1 generation routes
type HandlerV1 struct {
	generationService port.GenerationService
	logger            *slog.Logger
}

// NewGenerationHandlerV1 creates HandlerV1
func NewGenerationHandlerV1(service port.GenerationService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		generationService: service,
		logger:            logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/image", h.GenerateImagesV1)
	router.Post("/video", h.GenerateVideoV1)
	router.Get("/video/{sessionID}", h.GetVideoJobV1)
	router.Delete("/video/{sessionID}", h.CancelVideoV1)

	return router
}

package library

import (
	"log/slog"

	"imgstudio/internal/core/port"
	libraryservice "imgstudio/internal/core/service/library"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 library routes
type HandlerV1 struct {
	libraryService port.LibraryService
	sessions       *libraryservice.Sessions
	logger         *slog.Logger
}

// NewLibraryHandlerV1 creates HandlerV1
func NewLibraryHandlerV1(service port.LibraryService, sessions *libraryservice.Sessions, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		libraryService: service,
		sessions:       sessions,
		logger:         logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", h.ListV1)
	router.Post("/", h.ExportV1)
	router.Post("/browse", h.BrowseV1)
	router.Post("/browse/more", h.BrowseMoreV1)
	router.Post("/delete", h.DeleteV1)
	router.Get("/{mediaID}/download", h.DownloadV1)

	return router
}

package handoff

import (
	"log/slog"
	"net/http"
	"time"

	"imgstudio/internal/adapters/handlers/http/httpx"
	"imgstudio/internal/core/domain"
	"imgstudio/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 handoff routes
type HandlerV1 struct {
	store  port.HandoffStore
	logger *slog.Logger
}

// NewHandoffHandlerV1 creates HandlerV1
func NewHandoffHandlerV1(store port.HandoffStore, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		store:  store,
		logger: logger,
	}
}

// V1Handoff is a media item handed from one page to another
type V1Handoff struct {
	MediaID    string    `json:"mediaId,omitempty"`
	StorageURI string    `json:"gcsUri"`
	MimeType   string    `json:"mimeType,omitempty"`
	Target     string    `json:"target"`
	Prompt     string    `json:"prompt,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Put("/", h.PutV1)
	router.Post("/", h.PutV1)
	router.Get("/", h.PeekV1)
	router.Post("/take", h.TakeV1)

	return router
}

// PutV1 replaces the user's pending handoff
func (h *HandlerV1) PutV1(w http.ResponseWriter, r *http.Request) {
	owner := httpx.User(r.Context())

	var req V1Handoff
	if err := httpx.DecodeJSON(r, &req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if req.StorageURI == "" || req.Target == "" {
		http.Error(w, "gcsUri and target are required", http.StatusBadRequest)
		return
	}

	h.store.Put(owner, domain.Handoff{
		MediaID:    req.MediaID,
		StorageURI: req.StorageURI,
		MimeType:   req.MimeType,
		Target:     req.Target,
		Prompt:     req.Prompt,
	})
	w.WriteHeader(http.StatusNoContent)
}

// PeekV1 returns the pending handoff without claiming it
func (h *HandlerV1) PeekV1(w http.ResponseWriter, r *http.Request) {
	handoff, ok := h.store.Peek(httpx.User(r.Context()))
	h.write(w, handoff, ok)
}

// TakeV1 returns and clears the pending handoff. At most one caller receives it.
func (h *HandlerV1) TakeV1(w http.ResponseWriter, r *http.Request) {
	handoff, ok := h.store.Take(httpx.User(r.Context()))
	h.write(w, handoff, ok)
}

func (h *HandlerV1) write(w http.ResponseWriter, handoff *domain.Handoff, ok bool) {
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httpx.WriteJSON(w, h.logger, http.StatusOK, V1Handoff{
		MediaID:    handoff.MediaID,
		StorageURI: handoff.StorageURI,
		MimeType:   handoff.MimeType,
		Target:     handoff.Target,
		Prompt:     handoff.Prompt,
		CreatedAt:  handoff.CreatedAt,
	})
}

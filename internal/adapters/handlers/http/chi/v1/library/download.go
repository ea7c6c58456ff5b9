package library

import (
	"net/http"

	"imgstudio/internal/adapters/handlers/http/httpx"

	"github.com/go-chi/chi/v5"
)

// V1DownloadResponse carries the base64 payload of a record
type V1DownloadResponse struct {
	Data        string `json:"data"`
	Format      string `json:"format"`
	ContentType string `json:"contentType"`
}

// DownloadV1 is the function that handles Download
func (h *HandlerV1) DownloadV1(w http.ResponseWriter, r *http.Request) {
	owner := httpx.User(r.Context())

	mediaID := chi.URLParam(r, "mediaID")
	if mediaID == "" {
		http.Error(w, "media id is required", http.StatusBadRequest)
		return
	}

	data, format, err := h.libraryService.Download(r.Context(), owner, mediaID)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, h.logger, http.StatusOK, V1DownloadResponse{
		Data:        data,
		Format:      string(format),
		ContentType: format.ContentType(),
	})
}

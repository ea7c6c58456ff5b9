package generation

import (
	"net/http"

	"imgstudio/internal/adapters/handlers/http/httpx"

	"github.com/go-chi/chi/v5"
)

// V1VideoJobResponse is the state of a form session's video generation
type V1VideoJobResponse struct {
	SessionID     string             `json:"sessionId"`
	State         string             `json:"state"`
	OperationName string             `json:"operationName,omitempty"`
	Attempts      int                `json:"attempts"`
	Videos        []V1GeneratedMedia `json:"videos,omitempty"`
	Error         string             `json:"error,omitempty"`
}

// GetVideoJobV1 is the function that handles VideoJob
func (h *HandlerV1) GetVideoJobV1(w http.ResponseWriter, r *http.Request) {
	owner := httpx.User(r.Context())

	job, err := h.generationService.VideoJob(owner, chi.URLParam(r, "sessionID"))
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}

	resp := V1VideoJobResponse{
		SessionID:     job.SessionID,
		State:         string(job.State),
		OperationName: job.OperationName,
		Attempts:      job.Attempts,
		Error:         job.Error,
	}
	if len(job.Videos) > 0 {
		resp.Videos = toV1Media(job.Videos)
	}
	httpx.WriteJSON(w, h.logger, http.StatusOK, resp)
}

// CancelVideoV1 stops polling for a form session
func (h *HandlerV1) CancelVideoV1(w http.ResponseWriter, r *http.Request) {
	owner := httpx.User(r.Context())

	if err := h.generationService.CancelVideo(owner, chi.URLParam(r, "sessionID")); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

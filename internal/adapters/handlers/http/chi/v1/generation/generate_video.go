package generation

import (
	"net/http"

	"imgstudio/internal/adapters/handlers/http/httpx"
	"imgstudio/internal/core/domain"
)

// V1GenerateVideoResponse is the response to a video generation. Either Videos
// is set, or OperationName is being polled under SessionID.
type V1GenerateVideoResponse struct {
	SessionID     string             `json:"sessionId"`
	OperationName string             `json:"operationName,omitempty"`
	Videos        []V1GeneratedMedia `json:"videos,omitempty"`
}

// GenerateVideoV1 starts a video generation for a form session
func (h *HandlerV1) GenerateVideoV1(w http.ResponseWriter, r *http.Request) {
	owner := httpx.User(r.Context())

	var req V1GenerateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		sessionID = req.SessionID
	}

	start, err := h.generationService.GenerateVideo(r.Context(), owner, sessionID, domain.FormValues(req.Values))
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := V1GenerateVideoResponse{SessionID: sessionID, OperationName: start.OperationName}
	if len(start.Videos) > 0 {
		resp.Videos = toV1Media(start.Videos)
		httpx.WriteJSON(w, h.logger, http.StatusOK, resp)
		return
	}
	httpx.WriteJSON(w, h.logger, http.StatusAccepted, resp)
}

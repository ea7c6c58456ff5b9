package generation

import (
	"errors"
	"net/http"

	"imgstudio/internal/adapters/handlers/http/httpx"
	"imgstudio/internal/core/domain"
)

// V1GenerateRequest carries the submitted form values
type V1GenerateRequest struct {
	SessionID string         `json:"sessionId,omitempty"`
	Values    map[string]any `json:"values"`
}

// V1GenerateImagesResponse is the response to an image generation
type V1GenerateImagesResponse struct {
	Results []V1GeneratedMedia `json:"results"`
}

// GenerateImagesV1 is the function that handles GenerateImages
func (h *HandlerV1) GenerateImagesV1(w http.ResponseWriter, r *http.Request) {
	owner := httpx.User(r.Context())

	var req V1GenerateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	results, err := h.generationService.GenerateImages(r.Context(), owner, domain.FormValues(req.Values))
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.WriteJSON(w, h.logger, http.StatusOK, V1GenerateImagesResponse{Results: toV1Media(results)})
}

// writeError reports failures of the generation api as 502 with a readable message
func (h *HandlerV1) writeError(w http.ResponseWriter, err error) {
	if httpx.StatusFor(err) == http.StatusServiceUnavailable && !errors.Is(err, domain.ErrUpstreamUnavailable) {
		h.logger.Warn("generation failed", "error", err)
		http.Error(w, domain.UserMessage(err), http.StatusBadGateway)
		return
	}
	httpx.WriteError(w, h.logger, err)
}

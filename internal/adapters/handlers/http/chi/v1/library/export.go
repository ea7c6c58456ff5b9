package library

import (
	"net/http"

	"imgstudio/internal/adapters/handlers/http/httpx"
	"imgstudio/internal/core/domain"
)

// V1ExportRequest persists a generated item to the library
type V1ExportRequest struct {
	Kind                 string         `json:"kind"`
	StorageURI           string         `json:"gcsUri"`
	Mode                 string         `json:"mode"`
	ModelVersion         string         `json:"modelVersion"`
	Prompt               string         `json:"prompt"`
	Format               string         `json:"format"`
	VideoDurationSeconds *int           `json:"videoDuration"`
	VideoResolution      string         `json:"videoResolution"`
	VideoThumbnailURI    string         `json:"videoThumbnailGcsUri"`
	AspectRatio          string         `json:"aspectRatio"`
	UpscaleFactor        string         `json:"upscaleFactor"`
	Width                int            `json:"width"`
	Height               int            `json:"height"`
	Author               string         `json:"author"`
	Form                 map[string]any `json:"form"`
}

// ExportV1 is the function that handles Export
func (h *HandlerV1) ExportV1(w http.ResponseWriter, r *http.Request) {
	owner := httpx.User(r.Context())

	var req V1ExportRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	media, err := h.libraryService.Export(r.Context(), owner, domain.ExportRequest{
		Kind:                 domain.GenerationKind(req.Kind),
		StorageURI:           req.StorageURI,
		Mode:                 domain.CreationMode(req.Mode),
		ModelVersion:         req.ModelVersion,
		Prompt:               req.Prompt,
		Format:               domain.MediaFormat(req.Format),
		VideoDurationSeconds: req.VideoDurationSeconds,
		VideoResolution:      req.VideoResolution,
		VideoThumbnailURI:    req.VideoThumbnailURI,
		AspectRatio:          req.AspectRatio,
		UpscaleFactor:        req.UpscaleFactor,
		Width:                req.Width,
		Height:               req.Height,
		Author:               req.Author,
		Form:                 domain.FormValues(req.Form),
	})
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, h.logger, http.StatusCreated, toV1Item(*media))
}

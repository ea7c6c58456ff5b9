package vertex

import (
	"fmt"
	"strings"

	"imgstudio/internal/core/domain"

	"google.golang.org/genai"
)

func imageConfig(req domain.ImageRequest) *genai.GenerateImagesConfig {
	count := req.SampleCount
	if count < 1 {
		count = 1
	}
	return &genai.GenerateImagesConfig{
		NumberOfImages:   int32(count),
		AspectRatio:      req.AspectRatio,
		NegativePrompt:   req.NegativePrompt,
		OutputGCSURI:     req.OutputURI,
		IncludeRAIReason: true,
	}
}

func mapImages(res *genai.GenerateImagesResponse, req domain.ImageRequest, model string) []domain.GeneratedMedia {
	if res == nil {
		return nil
	}
	out := make([]domain.GeneratedMedia, 0, len(res.GeneratedImages))
	for _, generated := range res.GeneratedImages {
		if generated == nil {
			continue
		}
		media := domain.GeneratedMedia{
			Prompt:         req.Prompt,
			EnhancedPrompt: generated.EnhancedPrompt,
			Model:          model,
			AspectRatio:    req.AspectRatio,
			FilteredReason: generated.RAIFilteredReason,
			Form:           req.Form,
		}
		if generated.Image != nil {
			media.URI = generated.Image.GCSURI
			media.MimeType = generated.Image.MIMEType
			media.Data = generated.Image.ImageBytes
		}
		out = append(out, media)
	}
	return out
}

func videoConfig(req domain.VideoRequest) *genai.GenerateVideosConfig {
	count := req.SampleCount
	if count < 1 {
		count = 1
	}
	cfg := &genai.GenerateVideosConfig{
		NumberOfVideos: int32(count),
		OutputGCSURI:   req.OutputURI,
		AspectRatio:    req.AspectRatio,
		Resolution:     req.Resolution,
		NegativePrompt: req.NegativePrompt,
	}
	if req.DurationSeconds > 0 {
		seconds := int32(req.DurationSeconds)
		cfg.DurationSeconds = &seconds
	}
	return cfg
}

func startImage(uri string) (*genai.Image, error) {
	if uri == "" {
		return nil, nil
	}
	if !strings.HasPrefix(uri, "gs://") {
		return nil, fmt.Errorf("%w: start image must be a gs:// uri", domain.ErrInvalidForm)
	}
	return &genai.Image{GCSURI: uri, MIMEType: mimeFromURI(uri)}, nil
}

func mimeFromURI(uri string) string {
	switch {
	case strings.HasSuffix(uri, ".jpg"), strings.HasSuffix(uri, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(uri, ".webp"):
		return "image/webp"
	default:
		return "image/png"
	}
}

func mapVideoOperation(op *genai.GenerateVideosOperation, req domain.VideoRequest) *domain.VideoStatus {
	if op == nil {
		return &domain.VideoStatus{}
	}
	status := &domain.VideoStatus{Done: op.Done}
	if !op.Done {
		return status
	}
	if msg := operationError(op.Error); msg != "" {
		status.Error = msg
		return status
	}
	if op.Response == nil {
		return status
	}

	for _, generated := range op.Response.GeneratedVideos {
		if generated == nil || generated.Video == nil {
			continue
		}
		mimeType := generated.Video.MIMEType
		if mimeType == "" {
			mimeType = "video/mp4"
		}
		status.Videos = append(status.Videos, domain.GeneratedMedia{
			URI:             generated.Video.URI,
			MimeType:        mimeType,
			Prompt:          req.Prompt,
			Model:           req.Model,
			AspectRatio:     req.AspectRatio,
			DurationSeconds: req.DurationSeconds,
			Resolution:      req.Resolution,
			Form:            req.Form,
			Data:            generated.Video.VideoBytes,
		})
	}
	if len(status.Videos) == 0 && len(op.Response.RAIMediaFilteredReasons) > 0 {
		status.Error = strings.Join(op.Response.RAIMediaFilteredReasons, "; ")
	}
	return status
}

func operationError(raw map[string]any) string {
	if len(raw) == 0 {
		return ""
	}
	if msg, ok := raw["message"].(string); ok && msg != "" {
		return msg
	}
	return domain.GenericErrorMessage
}

package generation

import "imgstudio/internal/core/domain"

// V1GeneratedMedia is one generation result
type V1GeneratedMedia struct {
	URI             string         `json:"gcsUri"`
	MimeType        string         `json:"mimeType"`
	Prompt          string         `json:"prompt,omitempty"`
	EnhancedPrompt  string         `json:"enhancedPrompt,omitempty"`
	Model           string         `json:"modelVersion,omitempty"`
	AspectRatio     string         `json:"aspectRatio,omitempty"`
	DurationSeconds int            `json:"durationSeconds,omitempty"`
	Resolution      string         `json:"resolution,omitempty"`
	Form            map[string]any `json:"form,omitempty"`
}

func toV1Media(results []domain.GeneratedMedia) []V1GeneratedMedia {
	out := make([]V1GeneratedMedia, 0, len(results))
	for _, r := range results {
		out = append(out, V1GeneratedMedia{
			URI:             r.URI,
			MimeType:        r.MimeType,
			Prompt:          r.Prompt,
			EnhancedPrompt:  r.EnhancedPrompt,
			Model:           r.Model,
			AspectRatio:     r.AspectRatio,
			DurationSeconds: r.DurationSeconds,
			Resolution:      r.Resolution,
			Form:            r.Form,
		})
	}
	return out
}

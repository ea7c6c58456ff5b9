package library

import (
	"context"
	"fmt"
	"imgstudio/internal/core/domain"

	"github.com/google/uuid"
)

func (l *libraryService) Export(ctx context.Context, ownerEmail string, req domain.ExportRequest) (*domain.MediaMetadata, error) {

	if req.StorageURI == "" {
		return nil, fmt.Errorf("%w: storage uri is required", domain.ErrInvalidStorageURI)
	}
	for _, uri := range []string{req.StorageURI, req.VideoThumbnailURI} {
		if uri == "" {
			continue
		}
		if err := domain.CheckOwnedURI(uri, ownerEmail, l.cfg.MediaRoots); err != nil {
			l.logger.Warn("security: export of an object outside the user's folders rejected", "user", ownerEmail, "uri", uri)
			l.metrics.OwnershipViolation()
			return nil, err
		}
	}

	format := req.Format
	if format == "" {
		format = domain.MediaFormatPNG
		if req.Kind == domain.GenerationKindVideo {
			format = domain.MediaFormatMP4
		}
	}

	kind := req.Kind
	if kind == "" {
		kind = domain.GenerationKindImage
		if format.IsVideo() {
			kind = domain.GenerationKindVideo
		}
	}

	var tokens []string
	if len(req.Form) > 0 {
		schema, err := domain.SchemaFor(kind)
		if err != nil {
			return nil, err
		}
		if err := schema.Validate(req.Form); err != nil {
			return nil, err
		}
		tokens = schema.FilterTokens(req.Form)
	}

	mode := req.Mode
	if mode == "" {
		mode = domain.CreationModeGenerated
	}
	author := req.Author
	if author == "" {
		author = ownerEmail
	}
	prompt := req.Prompt
	if prompt == "" {
		prompt = req.Form.String("prompt")
	}
	model := req.ModelVersion
	if model == "" {
		model = req.Form.String("modelVersion")
	}
	aspectRatio := req.AspectRatio
	if aspectRatio == "" {
		aspectRatio = req.Form.String("aspectRatio")
	}

	media := domain.MediaMetadata{
		ID:                   uuid.NewString(),
		StorageURI:           req.StorageURI,
		ModelVersion:         model,
		Mode:                 mode,
		Author:               author,
		Prompt:               prompt,
		Format:               format,
		VideoDurationSeconds: req.VideoDurationSeconds,
		VideoResolution:      req.VideoResolution,
		VideoThumbnailURI:    req.VideoThumbnailURI,
		AspectRatio:          aspectRatio,
		UpscaleFactor:        req.UpscaleFactor,
		Width:                req.Width,
		Height:               req.Height,
		OwnerEmail:           ownerEmail,
		CombinedFilters:      tokens,
	}

	created, err := l.repo.Create(ctx, media)
	if err != nil {
		return nil, fmt.Errorf("failed to save media metadata: %w", err)
	}

	l.logger.Info("media exported to library", "user", ownerEmail, "media", created.ID, "format", created.Format)
	return created, nil
}

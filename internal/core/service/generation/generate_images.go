package generation

import (
	"context"
	"fmt"
	"imgstudio/internal/core/domain"
)

func (g *generationService) GenerateImages(ctx context.Context, ownerEmail string, values domain.FormValues) ([]domain.GeneratedMedia, error) {

	if err := domain.ImageGenerationForm.Validate(values); err != nil {
		return nil, err
	}

	req := domain.ImageRequestFromForm(values)
	if err := g.checkInputImage(ownerEmail, req.ReferenceImage); err != nil {
		return nil, err
	}
	req.OutputURI = g.outputURI(ownerEmail)

	results, err := g.client.GenerateImages(ctx, req)
	if err != nil {
		g.logger.Error("image generation failed", "user", ownerEmail, "model", req.Model, "err", err)
		return nil, fmt.Errorf("failed to generate images: %w", err)
	}

	images, filtered, err := g.persist(ctx, ownerEmail, results)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		if filtered != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoValidResults, filtered)
		}
		return nil, domain.ErrNoValidResults
	}

	g.logger.Info("images generated", "user", ownerEmail, "model", req.Model, "count", len(images))
	return images, nil
}

// persist uploads inline results and drops the ones filtered out by safety checks.
// It returns the last filter reason seen.
func (g *generationService) persist(ctx context.Context, ownerEmail string, results []domain.GeneratedMedia) ([]domain.GeneratedMedia, string, error) {
	var filtered string
	out := make([]domain.GeneratedMedia, 0, len(results))

	for _, result := range results {
		if result.URI == "" && len(result.Data) == 0 {
			if result.FilteredReason != "" {
				filtered = result.FilteredReason
			}
			continue
		}

		if result.URI == "" {
			format := domain.FormatFromContentType(result.MimeType)
			uri, err := g.storage.Upload(ctx, result.Data, objectName(ownerEmail, format), format.ContentType())
			if err != nil {
				return nil, "", fmt.Errorf("failed to store generated media: %w", err)
			}
			result.URI = uri
			result.MimeType = format.ContentType()
		}
		result.Data = nil
		out = append(out, result)
	}
	return out, filtered, nil
}

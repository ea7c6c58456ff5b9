package library

import (
	"context"
	"fmt"
	"imgstudio/internal/core/domain"
)

func (l *libraryService) Download(ctx context.Context, ownerEmail string, id string) (string, domain.MediaFormat, error) {

	media, err := l.repo.FindByID(ctx, ownerEmail, id)
	if err != nil {
		return "", "", err
	}
	if media.OwnerEmail != ownerEmail {
		l.logger.Warn("security: download requested for media owned by another user", "user", ownerEmail, "media", id)
		l.metrics.OwnershipViolation()
		return "", "", domain.ErrMediaNotFound
	}

	data, err := l.storage.Download(ctx, media.StorageURI)
	if err != nil {
		return "", "", fmt.Errorf("failed to download media %s: %w", id, err)
	}

	return data, media.Format, nil
}

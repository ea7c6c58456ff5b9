package cleanup

import (
	"context"
	"errors"
	"fmt"
	"imgstudio/internal/core/domain"
)

// Cleanup retries the deletion of a storage object left behind by a batch delete
func (c *cleanupService) Cleanup(ctx context.Context, req domain.StorageCleanupRequest) error {

	if _, _, err := domain.ParseStorageURI(req.URI); err != nil {
		return err
	}

	err := c.storage.Delete(ctx, req.URI)
	if errors.Is(err, domain.ErrObjectNotFound) {
		c.logger.Info("storage object already gone", "uri", req.URI, "media", req.MediaID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", req.URI, err)
	}

	c.logger.Info("storage object cleaned up", "uri", req.URI, "media", req.MediaID, "requestedAt", req.RequestedAt)
	return nil
}

package cleanup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"imgstudio/internal/core/domain"
)

func (c *cleanupService) HandleMessage(ctx context.Context, data []byte) error {
	var req domain.StorageCleanupRequest

	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedMessage, err)
	}
	if req.URI == "" {
		return fmt.Errorf("%w: no uri", domain.ErrMalformedMessage)
	}

	c.logger.Info("handling cleanup request", "uri", req.URI, "media", req.MediaID, "user", req.OwnerEmail)

	err := c.Cleanup(ctx, req)
	if errors.Is(err, domain.ErrInvalidStorageURI) {
		return fmt.Errorf("%w: %w", domain.ErrMalformedMessage, err)
	}
	return err
}

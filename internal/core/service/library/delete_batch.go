package library

import (
	"context"
	"errors"
	"fmt"
	"imgstudio/internal/core/domain"
	"imgstudio/internal/core/port"
	"time"

	"golang.org/x/sync/errgroup"
)

type storedObject struct {
	mediaID string
	uri     string
}

func (l *libraryService) DeleteBatch(ctx context.Context, ownerEmail string, ids []string, lookup port.RecordLookup) error {

	if len(ids) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(ids))
	allowed := make([]string, 0, len(ids))
	var objects []storedObject

	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}

		record := resolve(id, lookup)
		if record != nil && record.OwnerEmail != ownerEmail {
			l.logger.Warn("security: delete requested for media owned by another user",
				"user", ownerEmail, "media", id)
			l.metrics.OwnershipViolation()
			continue
		}

		allowed = append(allowed, id)
		if record == nil {
			continue
		}
		if record.StorageURI != "" {
			objects = append(objects, storedObject{mediaID: id, uri: record.StorageURI})
		}
		if record.VideoThumbnailURI != "" {
			objects = append(objects, storedObject{mediaID: id, uri: record.VideoThumbnailURI})
		}
	}

	if len(allowed) == 0 {
		return nil
	}

	l.deleteObjects(ctx, ownerEmail, objects)

	if err := l.repo.DeleteBatch(ctx, ownerEmail, allowed); err != nil {
		l.logger.Error("failed to commit batch delete", "user", ownerEmail, "count", len(allowed), "err", err)
		return fmt.Errorf("%w: %w", domain.ErrBatchDeleteFailed, err)
	}

	l.logger.Info("batch delete committed", "user", ownerEmail, "count", len(allowed), "objects", len(objects))
	return nil
}

// resolve only trusts records the caller already holds. Ids it has not seen
// still go to the owner scoped metadata delete but never touch storage.
func resolve(id string, lookup port.RecordLookup) *domain.MediaMetadata {
	if lookup == nil {
		return nil
	}
	record, ok := lookup(id)
	if !ok {
		return nil
	}
	return record
}

// deleteObjects removes storage payloads best effort. Failures are queued for the cleanup worker.
func (l *libraryService) deleteObjects(ctx context.Context, ownerEmail string, objects []storedObject) {
	var g errgroup.Group
	g.SetLimit(l.cfg.DeleteConcurrency)

	for _, object := range objects {
		g.Go(func() error {
			err := l.storage.Delete(ctx, object.uri)
			if err == nil || errors.Is(err, domain.ErrObjectNotFound) {
				return nil
			}

			l.logger.Warn("failed to delete storage object", "media", object.mediaID, "uri", object.uri, "err", err)
			l.metrics.StorageDeleteFailure()

			req := domain.StorageCleanupRequest{
				URI:         object.uri,
				OwnerEmail:  ownerEmail,
				MediaID:     object.mediaID,
				RequestedAt: time.Now().UTC(),
			}
			if pubErr := l.publisher.Publish(ctx, domain.EventTypeStorageCleanupRequested, req); pubErr != nil {
				l.logger.Error("failed to queue storage cleanup", "uri", object.uri, "err", pubErr)
			}
			return nil
		})
	}
	_ = g.Wait()
}

package library

import (
	"context"
	"fmt"
	"imgstudio/internal/core/domain"

	"golang.org/x/sync/errgroup"
)

func (l *libraryService) FetchPage(ctx context.Context, ownerEmail string, filter domain.LibraryFilter, cursor *domain.Cursor) (*domain.LibraryPage, error) {

	tokens, err := filter.Tokens()
	if err != nil {
		return nil, err
	}

	query := domain.PageQuery{
		OwnerEmail: ownerEmail,
		Tokens:     tokens,
		After:      cursor,
		Limit:      l.cfg.PageSize,
	}

	records, err := l.repo.FindPage(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch library page: %w", err)
	}
	if len(records) == 0 {
		return &domain.LibraryPage{}, nil
	}

	for _, record := range records {
		if record.HasLegacyShape {
			l.logger.Error("legacy media record found", "user", ownerEmail, "media", record.ID)
			return nil, domain.ErrLegacyDataMigrationRequired
		}
	}

	items := l.signRecords(ctx, records)

	// the cursor comes from the raw batch so dropped records never shift the next page
	next := domain.CursorFrom(records[len(records)-1])

	query.After = next
	query.Limit = 1
	lookahead, err := l.repo.FindPage(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to probe next library page: %w", err)
	}

	l.metrics.LibraryPage(len(items), len(records)-len(items))

	return &domain.LibraryPage{
		Items:      items,
		NextCursor: next,
		HasMore:    len(lookahead) > 0,
	}, nil
}

// signRecords resolves signed urls for every record concurrently and drops the records that cannot be shown
func (l *libraryService) signRecords(ctx context.Context, records []domain.MediaMetadata) []domain.LibraryItem {
	primary := make([]string, len(records))
	thumbnails := make([]string, len(records))

	var g errgroup.Group
	g.SetLimit(l.cfg.SignConcurrency)

	for i, record := range records {
		if record.StorageURI == "" {
			continue
		}
		g.Go(func() error {
			primary[i] = l.sign(ctx, record.ID, record.StorageURI)
			return nil
		})
		if record.VideoThumbnailURI != "" {
			g.Go(func() error {
				thumbnails[i] = l.sign(ctx, record.ID, record.VideoThumbnailURI)
				return nil
			})
		}
	}
	_ = g.Wait()

	items := make([]domain.LibraryItem, 0, len(records))
	for i, record := range records {
		if primary[i] == "" {
			continue
		}
		if record.Format.IsVideo() && thumbnails[i] == "" {
			l.logger.Warn("dropping video without thumbnail", "media", record.ID)
			continue
		}
		items = append(items, domain.LibraryItem{
			MediaMetadata:      record,
			SignedURL:          primary[i],
			SignedThumbnailURL: thumbnails[i],
		})
	}
	return items
}

func (l *libraryService) sign(ctx context.Context, mediaID string, uri string) string {
	url, err := l.storage.SignedURL(ctx, uri)
	if err != nil {
		l.logger.Warn("failed to sign storage uri", "media", mediaID, "uri", uri, "err", err)
		l.metrics.SignedURLFailure()
		return ""
	}
	return url
}

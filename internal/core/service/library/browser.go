package library

import (
	"context"
	"imgstudio/internal/core/domain"
	"imgstudio/internal/core/port"
	"slices"
	"sync"
)

// Browser accumulates the library pages a user has loaded so far.
// Only Reload, LoadMore and Remove change the accumulated pages.
type Browser struct {
	service    port.LibraryService
	ownerEmail string

	mu      sync.Mutex
	filter  domain.LibraryFilter
	items   []domain.LibraryItem
	cursor  *domain.Cursor
	hasMore bool
}

// NewBrowser creates an empty browser for ownerEmail
func NewBrowser(service port.LibraryService, ownerEmail string) *Browser {
	return &Browser{service: service, ownerEmail: ownerEmail}
}

// Reload replaces the accumulated pages with the first page matching filter
func (b *Browser) Reload(ctx context.Context, filter domain.LibraryFilter) (*domain.LibraryPage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	page, err := b.service.FetchPage(ctx, b.ownerEmail, filter, nil)
	if err != nil {
		return nil, err
	}

	b.filter = filter
	b.items = slices.Clone(page.Items)
	b.cursor = page.NextCursor
	b.hasMore = page.HasMore
	return b.viewLocked(), nil
}

// LoadMore appends the next page to the accumulated pages. It is a no-op when nothing is left to load.
func (b *Browser) LoadMore(ctx context.Context) (*domain.LibraryPage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.hasMore || b.cursor == nil {
		return b.viewLocked(), nil
	}

	page, err := b.service.FetchPage(ctx, b.ownerEmail, b.filter, b.cursor)
	if err != nil {
		return nil, err
	}

	b.items = append(b.items, page.Items...)
	if page.NextCursor != nil {
		b.cursor = page.NextCursor
	}
	b.hasMore = page.HasMore
	return b.viewLocked(), nil
}

// Lookup finds a record among the loaded pages
func (b *Browser) Lookup(id string) (*domain.MediaMetadata, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.items {
		if b.items[i].ID == id {
			record := b.items[i].MediaMetadata
			return &record, true
		}
	}
	return nil, false
}

// Remove forgets deleted records
func (b *Browser) Remove(ids []string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = slices.DeleteFunc(b.items, func(item domain.LibraryItem) bool {
		return slices.Contains(ids, item.ID)
	})
}

// View returns the accumulated pages
func (b *Browser) View() *domain.LibraryPage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.viewLocked()
}

func (b *Browser) viewLocked() *domain.LibraryPage {
	return &domain.LibraryPage{
		Items:      slices.Clone(b.items),
		NextCursor: b.cursor,
		HasMore:    b.hasMore,
	}
}

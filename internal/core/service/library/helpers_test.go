package library_test

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"imgstudio/internal/core/domain"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// newRecords builds n owner records, newest first, one second apart
func newRecords(owner string, n int) []domain.MediaMetadata {
	records := make([]domain.MediaMetadata, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, domain.MediaMetadata{
			ID:         fmt.Sprintf("media-%03d", i),
			StorageURI: fmt.Sprintf("gs://bucket/%s/%03d.png", owner, i),
			Timestamp:  baseTime.Add(-time.Duration(i) * time.Second),
			Format:     domain.MediaFormatPNG,
			OwnerEmail: owner,
		})
	}
	return records
}

// memoryRepository orders records like the real stores: timestamp then id, descending
type memoryRepository struct {
	mu      sync.Mutex
	records []domain.MediaMetadata
}

func newMemoryRepository(records ...domain.MediaMetadata) *memoryRepository {
	r := &memoryRepository{records: slices.Clone(records)}
	sort.Slice(r.records, func(i, j int) bool { return after(r.records[j], r.records[i]) })
	return r
}

// after reports whether a sorts strictly after b in descending order
func after(a, b domain.MediaMetadata) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}
	return a.ID < b.ID
}

func (r *memoryRepository) Create(_ context.Context, media domain.MediaMetadata) (*domain.MediaMetadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, media)
	return &media, nil
}

func (r *memoryRepository) FindByID(_ context.Context, owner string, id string) (*domain.MediaMetadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == id && rec.OwnerEmail == owner {
			return &rec, nil
		}
	}
	return nil, domain.ErrMediaNotFound
}

func (r *memoryRepository) FindPage(_ context.Context, query domain.PageQuery) ([]domain.MediaMetadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.MediaMetadata
	for _, rec := range r.records {
		if rec.OwnerEmail != query.OwnerEmail {
			continue
		}
		if len(query.Tokens) > 0 && !slices.ContainsFunc(rec.CombinedFilters, func(t string) bool {
			return slices.Contains(query.Tokens, t)
		}) {
			continue
		}
		if query.After != nil {
			cursor := domain.MediaMetadata{ID: query.After.ID, Timestamp: query.After.Time()}
			if !after(rec, cursor) {
				continue
			}
		}
		out = append(out, rec)
		if len(out) == query.Limit {
			break
		}
	}
	return out, nil
}

func (r *memoryRepository) DeleteBatch(_ context.Context, owner string, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = slices.DeleteFunc(r.records, func(rec domain.MediaMetadata) bool {
		return rec.OwnerEmail == owner && slices.Contains(ids, rec.ID)
	})
	return nil
}

func testLogger() *slog.Logger {
	return slog.Default()
}

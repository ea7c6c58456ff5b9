package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"imgstudio/internal/core/domain"
	"imgstudio/internal/core/port"
	"time"

	"github.com/lib/pq"
)

const mediaColumns = `id, owner_email, storage_uri, created_at, model_version, mode, author, prompt, format,
       video_duration_seconds, video_resolution, video_thumbnail_uri, aspect_ratio, upscale_factor,
       width, height, combined_filters, legacy_tags IS NOT NULL`

type sqlMediaRepository struct {
	db SQLQuerier
}

// NewSqlMediaRepository creates sqlMediaRepository that implements port.MediaRepository
func NewSqlMediaRepository(db SQLQuerier) port.MediaRepository {
	return &sqlMediaRepository{
		db: db,
	}
}

// Create inserts a media record. The timestamp is assigned by the database.
func (s *sqlMediaRepository) Create(ctx context.Context, media domain.MediaMetadata) (*domain.MediaMetadata, error) {
	query := `INSERT INTO media_metadata (id, owner_email, storage_uri, model_version, mode, author, prompt, format,
                  video_duration_seconds, video_resolution, video_thumbnail_uri, aspect_ratio, upscale_factor,
                  width, height, combined_filters)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
              RETURNING created_at`

	var duration sql.NullInt32
	if media.VideoDurationSeconds != nil {
		duration = sql.NullInt32{Int32: int32(*media.VideoDurationSeconds), Valid: true}
	}
	filters := media.CombinedFilters
	if filters == nil {
		filters = []string{}
	}

	var createdAt time.Time
	err := s.db.QueryRowContext(ctx, query,
		media.ID,
		media.OwnerEmail,
		media.StorageURI,
		media.ModelVersion,
		media.Mode,
		media.Author,
		media.Prompt,
		media.Format,
		duration,
		media.VideoResolution,
		media.VideoThumbnailURI,
		media.AspectRatio,
		media.UpscaleFactor,
		media.Width,
		media.Height,
		pq.Array(filters),
	).Scan(&createdAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting media metadata: %w", err)
	}

	media.Timestamp = createdAt.UTC()
	media.CombinedFilters = filters
	return &media, nil
}

// FindByID finds a record of the owner
func (s *sqlMediaRepository) FindByID(ctx context.Context, ownerEmail string, id string) (*domain.MediaMetadata, error) {
	query := `SELECT ` + mediaColumns + `
              FROM media_metadata
              WHERE id = $1 AND owner_email = $2`

	var row dbMediaMetadata
	if err := row.scan(s.db.QueryRowContext(ctx, query, id, ownerEmail)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMediaNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// FindPage returns the owner's records strictly older than the cursor, newest first.
// Records sharing a timestamp are ordered by id so the cursor never skips or repeats one.
func (s *sqlMediaRepository) FindPage(ctx context.Context, q domain.PageQuery) ([]domain.MediaMetadata, error) {
	query := `SELECT ` + mediaColumns + `
              FROM media_metadata
              WHERE owner_email = $1
                AND (cardinality($2::text[]) = 0 OR combined_filters && $2::text[])
                AND ($3::timestamptz IS NULL OR (created_at, id) < ($3::timestamptz, $4::text))
              ORDER BY created_at DESC, id DESC
              LIMIT $5`

	tokens := q.Tokens
	if tokens == nil {
		tokens = []string{}
	}
	var after sql.NullTime
	var afterID string
	if q.After != nil {
		after = sql.NullTime{Time: q.After.Time(), Valid: true}
		afterID = q.After.ID
	}

	rows, err := s.db.QueryContext(ctx, query, q.OwnerEmail, pq.Array(tokens), after, afterID, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("error querying media page: %w", err)
	}
	defer rows.Close()

	records := make([]domain.MediaMetadata, 0, q.Limit)
	for rows.Next() {
		var row dbMediaMetadata
		if err := row.scan(rows); err != nil {
			return nil, fmt.Errorf("error scanning media metadata: %w", err)
		}
		records = append(records, *row.ToDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating media metadata: %w", err)
	}

	return records, nil
}

// DeleteBatch deletes the owner's records in one statement. Unknown ids are ignored.
func (s *sqlMediaRepository) DeleteBatch(ctx context.Context, ownerEmail string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := `DELETE FROM media_metadata WHERE owner_email = $1 AND id = ANY($2)`

	if _, err := s.db.ExecContext(ctx, query, ownerEmail, pq.Array(ids)); err != nil {
		return fmt.Errorf("error deleting media metadata: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// dbMediaMetadata represents a media record in DB
type dbMediaMetadata struct {
	ID                string         `db:"id"`
	OwnerEmail        string         `db:"owner_email"`
	StorageURI        string         `db:"storage_uri"`
	CreatedAt         time.Time      `db:"created_at"`
	ModelVersion      string         `db:"model_version"`
	Mode              string         `db:"mode"`
	Author            string         `db:"author"`
	Prompt            string         `db:"prompt"`
	Format            string         `db:"format"`
	VideoDuration     sql.NullInt32  `db:"video_duration_seconds"`
	VideoResolution   string         `db:"video_resolution"`
	VideoThumbnailURI string         `db:"video_thumbnail_uri"`
	AspectRatio       string         `db:"aspect_ratio"`
	UpscaleFactor     string         `db:"upscale_factor"`
	Width             int            `db:"width"`
	Height            int            `db:"height"`
	CombinedFilters   pq.StringArray `db:"combined_filters"`
	HasLegacyTags     bool
}

func (m *dbMediaMetadata) scan(row rowScanner) error {
	return row.Scan(
		&m.ID,
		&m.OwnerEmail,
		&m.StorageURI,
		&m.CreatedAt,
		&m.ModelVersion,
		&m.Mode,
		&m.Author,
		&m.Prompt,
		&m.Format,
		&m.VideoDuration,
		&m.VideoResolution,
		&m.VideoThumbnailURI,
		&m.AspectRatio,
		&m.UpscaleFactor,
		&m.Width,
		&m.Height,
		&m.CombinedFilters,
		&m.HasLegacyTags,
	)
}

// ToDomain converts to domain.MediaMetadata
func (m *dbMediaMetadata) ToDomain() *domain.MediaMetadata {
	media := &domain.MediaMetadata{
		ID:                m.ID,
		OwnerEmail:        m.OwnerEmail,
		StorageURI:        m.StorageURI,
		Timestamp:         m.CreatedAt.UTC(),
		ModelVersion:      m.ModelVersion,
		Mode:              domain.CreationMode(m.Mode),
		Author:            m.Author,
		Prompt:            m.Prompt,
		Format:            domain.MediaFormat(m.Format),
		VideoResolution:   m.VideoResolution,
		VideoThumbnailURI: m.VideoThumbnailURI,
		AspectRatio:       m.AspectRatio,
		UpscaleFactor:     m.UpscaleFactor,
		Width:             m.Width,
		Height:            m.Height,
		CombinedFilters:   []string(m.CombinedFilters),
		HasLegacyShape:    m.HasLegacyTags,
	}
	if m.VideoDuration.Valid {
		seconds := int(m.VideoDuration.Int32)
		media.VideoDurationSeconds = &seconds
	}
	return media
}

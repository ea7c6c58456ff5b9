package postgres

import (
	"context"
	"fmt"
)

// MigrateLegacyTags folds the retired free form tags of every record into its
// combined filter tokens as tags_<value> and clears the retired column.
// It returns the number of migrated records.
func MigrateLegacyTags(ctx context.Context, db SQLQuerier) (int64, error) {
	query := `UPDATE media_metadata
              SET combined_filters = ARRAY(
                      SELECT DISTINCT token
                      FROM unnest(combined_filters || ARRAY(SELECT 'tags_' || lower(tag) FROM unnest(legacy_tags) AS tag)) AS token
                      ORDER BY token),
                  legacy_tags = NULL
              WHERE legacy_tags IS NOT NULL`

	result, err := db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("error migrating legacy tags: %w", err)
	}
	migrated, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error checking rows affected: %w", err)
	}
	return migrated, nil
}

package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"imgstudio/internal/core/domain"
	"imgstudio/internal/core/port"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoMediaRepository struct {
	coll *mongo.Collection
}

// NewMongoMediaRepository creates mongoMediaRepository that implements port.MediaRepository.
// It ensures the indexes backing the library query exist.
func NewMongoMediaRepository(ctx context.Context, coll *mongo.Collection) (port.MediaRepository, error) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerEmail", Value: 1}, {Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("owner_timestamp_idx"),
		},
		{
			Keys:    bson.D{{Key: "combinedFilters", Value: 1}},
			Options: options.Index().SetName("combined_filters_idx"),
		},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, fmt.Errorf("error creating media indexes: %w", err)
	}
	return &mongoMediaRepository{coll: coll}, nil
}

// Create inserts a media record stamped with the current time at millisecond precision
func (m *mongoMediaRepository) Create(ctx context.Context, media domain.MediaMetadata) (*domain.MediaMetadata, error) {
	media.Timestamp = time.Now().UTC().Truncate(time.Millisecond)
	if media.CombinedFilters == nil {
		media.CombinedFilters = []string{}
	}

	if _, err := m.coll.InsertOne(ctx, fromDomain(media)); err != nil {
		return nil, fmt.Errorf("error inserting media metadata: %w", err)
	}
	return &media, nil
}

// FindByID finds a record of the owner
func (m *mongoMediaRepository) FindByID(ctx context.Context, ownerEmail string, id string) (*domain.MediaMetadata, error) {
	var doc mediaDocument
	err := m.coll.FindOne(ctx, bson.M{"_id": id, "ownerEmail": ownerEmail}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMediaNotFound
		}
		return nil, fmt.Errorf("error finding media metadata: %w", err)
	}
	return doc.ToDomain(), nil
}

// FindPage returns the owner's records strictly older than the cursor, newest first
func (m *mongoMediaRepository) FindPage(ctx context.Context, q domain.PageQuery) ([]domain.MediaMetadata, error) {
	filter := bson.M{"ownerEmail": q.OwnerEmail}
	if len(q.Tokens) > 0 {
		filter["combinedFilters"] = bson.M{"$in": q.Tokens}
	}
	if q.After != nil {
		after := q.After.Time()
		filter["$or"] = bson.A{
			bson.M{"timestamp": bson.M{"$lt": after}},
			bson.M{"timestamp": after, "_id": bson.M{"$lt": q.After.ID}},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(q.Limit))

	cur, err := m.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying media page: %w", err)
	}
	defer cur.Close(ctx)

	records := make([]domain.MediaMetadata, 0, q.Limit)
	for cur.Next(ctx) {
		var doc mediaDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding media metadata: %w", err)
		}
		records = append(records, *doc.ToDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("error iterating media metadata: %w", err)
	}
	return records, nil
}

// DeleteBatch removes the owner's records with a single DeleteMany. Unlike the
// postgres store this is not atomic across documents: a failure part way may
// leave some of the records deleted.
func (m *mongoMediaRepository) DeleteBatch(ctx context.Context, ownerEmail string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := m.coll.DeleteMany(ctx, bson.M{"ownerEmail": ownerEmail, "_id": bson.M{"$in": ids}})
	if err != nil {
		return fmt.Errorf("error deleting media metadata: %w", err)
	}
	return nil
}

// MigrateLegacyTags folds the retired tags field of every document into its
// combined filter tokens as tags_<value> and removes the field.
func MigrateLegacyTags(ctx context.Context, coll *mongo.Collection) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"combinedFilters": bson.M{"$setUnion": bson.A{
				bson.M{"$ifNull": bson.A{"$combinedFilters", bson.A{}}},
				bson.M{"$map": bson.M{
					"input": bson.M{"$cond": bson.A{bson.M{"$isArray": "$tags"}, "$tags", bson.A{}}},
					"as":    "tag",
					"in":    bson.M{"$concat": bson.A{"tags_", bson.M{"$toLower": "$$tag"}}},
				}},
			}},
		}}},
		{{Key: "$unset", Value: "tags"}},
	}

	res, err := coll.UpdateMany(ctx, bson.M{"tags": bson.M{"$exists": true}}, pipeline)
	if err != nil {
		return 0, fmt.Errorf("error migrating legacy tags: %w", err)
	}
	return res.ModifiedCount, nil
}

package mongodb

import (
	"time"

	"imgstudio/internal/core/domain"

	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// mediaDocument represents a media record in the collection
type mediaDocument struct {
	ID                   string    `bson:"_id"`
	OwnerEmail           string    `bson:"ownerEmail"`
	StorageURI           string    `bson:"gcsUri"`
	Timestamp            time.Time `bson:"timestamp"`
	ModelVersion         string    `bson:"modelVersion,omitempty"`
	Mode                 string    `bson:"mode"`
	Author               string    `bson:"author,omitempty"`
	Prompt               string    `bson:"prompt,omitempty"`
	Format               string    `bson:"format"`
	VideoDurationSeconds *int      `bson:"videoDuration,omitempty"`
	VideoResolution      string    `bson:"videoResolution,omitempty"`
	VideoThumbnailURI    string    `bson:"videoThumbnailGcsUri,omitempty"`
	AspectRatio          string    `bson:"aspectRatio,omitempty"`
	UpscaleFactor        string    `bson:"upscaleFactor,omitempty"`
	Width                int       `bson:"width,omitempty"`
	Height               int       `bson:"height,omitempty"`
	CombinedFilters      []string  `bson:"combinedFilters"`
	// LegacyTags is the retired free form tags field, only ever read
	LegacyTags presence `bson:"tags,omitempty"`
}

// presence records whether a field was stored at all, whatever its value.
// A stored null still counts. It is never written back.
type presence struct {
	set bool
}

func (p *presence) UnmarshalBSONValue(_ bsontype.Type, _ []byte) error {
	p.set = true
	return nil
}

func (p presence) IsZero() bool {
	return !p.set
}

func fromDomain(m domain.MediaMetadata) mediaDocument {
	return mediaDocument{
		ID:                   m.ID,
		OwnerEmail:           m.OwnerEmail,
		StorageURI:           m.StorageURI,
		Timestamp:            m.Timestamp,
		ModelVersion:         m.ModelVersion,
		Mode:                 string(m.Mode),
		Author:               m.Author,
		Prompt:               m.Prompt,
		Format:               string(m.Format),
		VideoDurationSeconds: m.VideoDurationSeconds,
		VideoResolution:      m.VideoResolution,
		VideoThumbnailURI:    m.VideoThumbnailURI,
		AspectRatio:          m.AspectRatio,
		UpscaleFactor:        m.UpscaleFactor,
		Width:                m.Width,
		Height:               m.Height,
		CombinedFilters:      m.CombinedFilters,
	}
}

// ToDomain converts to domain.MediaMetadata
func (d mediaDocument) ToDomain() *domain.MediaMetadata {
	return &domain.MediaMetadata{
		ID:                   d.ID,
		OwnerEmail:           d.OwnerEmail,
		StorageURI:           d.StorageURI,
		Timestamp:            d.Timestamp.UTC(),
		ModelVersion:         d.ModelVersion,
		Mode:                 domain.CreationMode(d.Mode),
		Author:               d.Author,
		Prompt:               d.Prompt,
		Format:               domain.MediaFormat(d.Format),
		VideoDurationSeconds: d.VideoDurationSeconds,
		VideoResolution:      d.VideoResolution,
		VideoThumbnailURI:    d.VideoThumbnailURI,
		AspectRatio:          d.AspectRatio,
		UpscaleFactor:        d.UpscaleFactor,
		Width:                d.Width,
		Height:               d.Height,
		CombinedFilters:      d.CombinedFilters,
		HasLegacyShape:       d.LegacyTags.set,
	}
}

package library

import (
	"time"

	"imgstudio/internal/core/domain"
)

// V1MediaItem is a library record with signed urls
type V1MediaItem struct {
	ID                   string    `json:"id"`
	StorageURI           string    `json:"gcsUri"`
	SignedURL            string    `json:"signedUrl,omitempty"`
	SignedThumbnailURL   string    `json:"signedThumbnailUrl,omitempty"`
	Timestamp            time.Time `json:"timestamp"`
	ModelVersion         string    `json:"modelVersion,omitempty"`
	Mode                 string    `json:"mode"`
	Author               string    `json:"author,omitempty"`
	Prompt               string    `json:"prompt,omitempty"`
	Format               string    `json:"format"`
	VideoDurationSeconds *int      `json:"videoDuration,omitempty"`
	VideoResolution      string    `json:"videoResolution,omitempty"`
	VideoThumbnailURI    string    `json:"videoThumbnailGcsUri,omitempty"`
	AspectRatio          string    `json:"aspectRatio,omitempty"`
	UpscaleFactor        string    `json:"upscaleFactor,omitempty"`
	Width                int       `json:"width,omitempty"`
	Height               int       `json:"height,omitempty"`
	CombinedFilters      []string  `json:"combinedFilters"`
}

// V1LibraryPageResponse is one page, or every page loaded so far in a browse session
type V1LibraryPageResponse struct {
	Items      []V1MediaItem `json:"items"`
	NextCursor string        `json:"nextCursor,omitempty"`
	HasMore    bool          `json:"hasMore"`
}

func toV1Item(m domain.MediaMetadata) V1MediaItem {
	return V1MediaItem{
		ID:                   m.ID,
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

func toV1Page(page *domain.LibraryPage) V1LibraryPageResponse {
	resp := V1LibraryPageResponse{
		Items:   make([]V1MediaItem, 0, len(page.Items)),
		HasMore: page.HasMore,
	}
	for _, item := range page.Items {
		v1 := toV1Item(item.MediaMetadata)
		v1.SignedURL = item.SignedURL
		v1.SignedThumbnailURL = item.SignedThumbnailURL
		resp.Items = append(resp.Items, v1)
	}
	if page.NextCursor != nil {
		resp.NextCursor = page.NextCursor.Encode()
	}
	return resp
}

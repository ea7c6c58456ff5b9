package domain

import "time"

// CreationMode is how a media item was produced
type CreationMode string

const (
	CreationModeGenerated    CreationMode = "Generated"
	CreationModeEdited       CreationMode = "Edited"
	CreationModeUpscaled     CreationMode = "Upscaled"
	CreationModeVirtualTryOn CreationMode = "VirtualTryOn"
)

// MediaFormat is the stored payload format
type MediaFormat string

const (
	MediaFormatPNG  MediaFormat = "PNG"
	MediaFormatJPEG MediaFormat = "JPEG"
	MediaFormatWEBP MediaFormat = "WEBP"
	MediaFormatMP4  MediaFormat = "MP4"
)

// IsVideo reports whether the format is a video container
func (f MediaFormat) IsVideo() bool {
	return f == MediaFormatMP4
}

// ContentType returns the MIME type of the format
func (f MediaFormat) ContentType() string {
	switch f {
	case MediaFormatPNG:
		return "image/png"
	case MediaFormatJPEG:
		return "image/jpeg"
	case MediaFormatWEBP:
		return "image/webp"
	case MediaFormatMP4:
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}

// FormatFromContentType maps a MIME type back to a MediaFormat
func FormatFromContentType(contentType string) MediaFormat {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return MediaFormatJPEG
	case "image/webp":
		return MediaFormatWEBP
	case "video/mp4":
		return MediaFormatMP4
	default:
		return MediaFormatPNG
	}
}

// Extension returns the file extension, dot included
func (f MediaFormat) Extension() string {
	switch f {
	case MediaFormatJPEG:
		return ".jpg"
	case MediaFormatWEBP:
		return ".webp"
	case MediaFormatMP4:
		return ".mp4"
	default:
		return ".png"
	}
}

// MediaMetadata represents one media item persisted to a user's library
type MediaMetadata struct {
	ID                   string
	StorageURI           string
	Timestamp            time.Time
	ModelVersion         string
	Mode                 CreationMode
	Author               string
	Prompt               string
	Format               MediaFormat
	VideoDurationSeconds *int
	VideoResolution      string
	VideoThumbnailURI    string
	AspectRatio          string
	UpscaleFactor        string
	Width                int
	Height               int
	OwnerEmail           string
	CombinedFilters      []string

	// HasLegacyShape is set by repositories when the stored record still carries the retired tags field
	HasLegacyShape bool
}

// LibraryItem is a media record with its storage objects resolved to signed urls
type LibraryItem struct {
	MediaMetadata
	SignedURL          string
	SignedThumbnailURL string
}

// LibraryPage is one page of a user's library
type LibraryPage struct {
	Items      []LibraryItem
	NextCursor *Cursor
	HasMore    bool
}

// PageQuery describes a descending time-ordered library query
type PageQuery struct {
	OwnerEmail string
	Tokens     []string
	After      *Cursor
	Limit      int
}

// ExportRequest describes a generated item to persist to the library
type ExportRequest struct {
	Kind                 GenerationKind
	StorageURI           string
	Mode                 CreationMode
	ModelVersion         string
	Prompt               string
	Format               MediaFormat
	VideoDurationSeconds *int
	VideoResolution      string
	VideoThumbnailURI    string
	AspectRatio          string
	UpscaleFactor        string
	Width                int
	Height               int
	Author               string
	Form                 FormValues
}

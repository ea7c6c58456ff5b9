package domain

import "time"

// Handoff carries a media item from one page to another (e.g. "send to edit")
type Handoff struct {
	MediaID    string
	StorageURI string
	MimeType   string
	Target     string
	Prompt     string
	CreatedAt  time.Time
}

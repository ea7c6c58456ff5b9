package port

import "context"

// ObjectStorage is an interface to define object storage interactions. Objects are addressed by gs:// uri.
type ObjectStorage interface {
	SignedURL(ctx context.Context, uri string) (string, error)
	Download(ctx context.Context, uri string) (string, error)
	Upload(ctx context.Context, data []byte, destination string, contentType string) (string, error)
	Delete(ctx context.Context, uri string) error
}

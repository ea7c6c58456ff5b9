package domain

import (
	"fmt"
	"strings"
)

// ParseStorageURI splits gs://bucket/key (or s3://bucket/key) into bucket and key
func ParseStorageURI(uri string) (string, string, error) {
	var rest string
	switch {
	case strings.HasPrefix(uri, "gs://"):
		rest = strings.TrimPrefix(uri, "gs://")
	case strings.HasPrefix(uri, "s3://"):
		rest = strings.TrimPrefix(uri, "s3://")
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidStorageURI, uri)
	}

	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidStorageURI, uri)
	}
	return bucket, key, nil
}

// StorageURI joins a bucket and a key into a gs:// uri
func StorageURI(bucket, key string) string {
	return "gs://" + bucket + "/" + strings.TrimPrefix(key, "/")
}

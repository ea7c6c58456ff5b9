package domain_test

import (
	"testing"

	"imgstudio/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStorageURI(t *testing.T) {
	bucket, key, err := domain.ParseStorageURI("gs://media/generated/abc/1.png")
	require.NoError(t, err)
	assert.Equal(t, "media", bucket)
	assert.Equal(t, "generated/abc/1.png", key)

	for _, uri := range []string{"", "https://media/1.png", "gs://media", "gs:///1.png", "gs://media/"} {
		_, _, err := domain.ParseStorageURI(uri)
		assert.ErrorIs(t, err, domain.ErrInvalidStorageURI, uri)
	}
}

func TestStorageURI(t *testing.T) {
	assert.Equal(t, "gs://media/a/b.png", domain.StorageURI("media", "/a/b.png"))
}

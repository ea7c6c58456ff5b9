package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// UploadFolder is the key prefix of objects the service uploads itself
const UploadFolder = "generated"

// OwnerFolder is the per user path segment of object names. It keeps raw emails out of storage.
func OwnerFolder(ownerEmail string) string {
	sum := sha256.Sum256([]byte(ownerEmail))
	return hex.EncodeToString(sum[:8])
}

// OwnerURIPrefix is the folder of ownerEmail below a media root, with a trailing slash
func OwnerURIPrefix(root string, ownerEmail string) string {
	return strings.TrimSuffix(root, "/") + "/" + OwnerFolder(ownerEmail) + "/"
}

// MediaRoots lists the storage prefixes holding per user folders: the upload folder
// of the bucket and the generation output prefix.
func MediaRoots(bucket string, outputURIPrefix string) []string {
	roots := []string{StorageURI(bucket, UploadFolder)}
	if output := strings.TrimSuffix(outputURIPrefix, "/"); output != "" && output != roots[0] {
		roots = append(roots, output)
	}
	return roots
}

// CheckOwnedURI fails with ErrInvalidStorageURI unless uri names an object inside
// one of ownerEmail's folders below roots.
func CheckOwnedURI(uri string, ownerEmail string, roots []string) error {
	_, key, err := ParseStorageURI(uri)
	if err != nil {
		return err
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == "." || segment == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidStorageURI, uri)
		}
	}
	for _, root := range roots {
		prefix := OwnerURIPrefix(root, ownerEmail)
		if strings.HasPrefix(uri, prefix) && len(uri) > len(prefix) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q is outside the user's media folders", ErrInvalidStorageURI, uri)
}

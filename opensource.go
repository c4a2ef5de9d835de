// Package hprccatalog holds the I/O helpers shared by the catalog build
// commands: opening local or Google Storage source sheets, transparent
// decompression, and delimiter detection.
package hprccatalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// SplitGSPath splits gs://bucket/path/to/object into its bucket and object
// name.
func SplitGSPath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into bucket and object, but got %d parts: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// IsGoogleStoragePath reports whether path addresses a Google Storage object.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// OpenSource opens a source sheet for reading, either from the local
// filesystem or, when client is non-nil and the path starts with gs://, from
// Google Storage. Compressed content is decompressed transparently.
func OpenSource(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	var rc io.ReadCloser

	if IsGoogleStoragePath(path) {
		if client == nil {
			return nil, fmt.Errorf("%s: no Google Storage client configured", path)
		}

		bucketName, objectName, err := SplitGSPath(path)
		if err != nil {
			return nil, pfx.Err(err)
		}

		r, err := client.Bucket(bucketName).Object(objectName).NewReader(ctx)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}
		rc = r
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, pfx.Err(err)
		}
		rc = f
	}

	return MaybeDecompressReadCloser(rc)
}

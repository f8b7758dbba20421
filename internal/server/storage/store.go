// Package storage abstracts the per-user file tree the proxy serves from.
// Two backends exist: a local directory tree and an S3-compatible bucket.
package storage

import (
	"context"
	"io"
)

// FileInfo describes an opened file.
type FileInfo struct {
	Name     string
	Size     int64
	MimeType string
}

// FileStore resolves a path inside one user's tree and opens it for reading.
// Paths that do not resolve to a regular file yield common.ErrorNotFound.
type FileStore interface {
	Open(ctx context.Context, userID, path string) (io.ReadCloser, *FileInfo, error)
}

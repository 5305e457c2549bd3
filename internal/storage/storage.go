package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when the requested object does not exist.
var ErrNotFound = errors.New("object not found")

// UploadOptions conveys upload metadata.
type UploadOptions struct {
	ContentType      string
	ProgressCallback func(done, total int64)
}

// Service reads and publishes catalog objects addressed by slash separated keys.
type Service interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Upload(ctx context.Context, key, localPath string, opts UploadOptions) (string, error)
}

package storage

import (
	"context"
	"io"
	"time"
)

// StorageInterface abstracts the file storage backend. The review workflow
// never interprets file bytes; it only hands out upload URLs and records
// {url, public id} pairs.
type StorageInterface interface {
	// GenerateUploadURL returns a presigned-style URL a client PUTs the file
	// to, together with the public key under which the file will be served.
	GenerateUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error)

	// PublicURL returns the stable URL a stored key is served from.
	PublicURL(key string) string

	// FileExists checks if a file exists and returns its size.
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a file from storage.
	DeleteFile(ctx context.Context, key string) error

	// SaveFile and ReadFile back the mock backend's HTTP endpoints.
	SaveFile(key string, reader io.Reader) error
	ReadFile(key string) (io.ReadCloser, error)
}

// Package storage abstracts object storage for uploaded assets such as
// party logos and candidate symbol images.
package storage

import (
	"context"
	"io"
	"time"
)

// Storage defines the object storage operations the platform uses.
type Storage interface {
	io.Closer

	// PutObject stores data and returns object metadata.
	PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error)
	// GetObject retrieves data and metadata for the object.
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error)
	// StatObject returns object metadata without reading its contents.
	StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error)
	// DeleteObject removes the object.
	DeleteObject(ctx context.Context, bucket, key string) error
	// PresignGet returns a signed URL for downloading.
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

// PutOptions configures upload behavior.
type PutOptions struct {
	// Size is the expected content length; -1 when unknown.
	Size int64
	// ContentType is the MIME type for the object.
	ContentType string
	// Metadata includes custom key/value metadata.
	Metadata map[string]string
}

// ObjectInfo describes object metadata.
type ObjectInfo struct {
	Bucket      string
	Key         string
	Size        int64
	ETag        string
	ContentType string
	Metadata    map[string]string
	UpdatedAt   time.Time
}

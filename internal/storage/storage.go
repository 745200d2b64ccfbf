package storage

import (
	"context"
	"io"
	"time"
)

// Package storage holds the S3-compatible object storage abstraction used for
// document blobs. Implementations stream content only; nothing touches local
// disk.

// PutOptions are optional parameters for uploading an object. Size is the
// exact byte count when known, or -1 to let the backend chunk as it sees fit.
type PutOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the blob half of the document store.
type Storage interface {
	// Put uploads an object under key from the reader.
	Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (ObjectInfo, error)
	// Get opens an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL for downloading the object
	// without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

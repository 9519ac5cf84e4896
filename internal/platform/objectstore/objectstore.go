// Package objectstore is the small key/value blob surface used for database
// backups. S3 (or any S3-compatible endpoint) in production, memory in tests.
package objectstore

import (
	"context"
	"errors"
	"io"
	"time"
)

type Driver string

const (
	DriverS3     Driver = "s3"
	DriverMemory Driver = "memory"
)

var (
	ErrNotFound = errors.New("objectstore: object not found")
	ErrExists   = errors.New("objectstore: object already exists")
)

type Info struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size_bytes"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

type Store interface {
	// Put creates key; it fails with ErrExists rather than overwrite.
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}

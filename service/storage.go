package service

import (
	"context"
	"io"
)

// ObjectStorage is the blob-storage collaborator. MinioService is the
// production implementation; tests substitute an in-memory fake.
type ObjectStorage interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	GetPresignedURL(ctx context.Context, objectName string) (string, error)
	GetPublicURL(objectName string) string
}

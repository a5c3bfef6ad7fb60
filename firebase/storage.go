package firebase

import (
	"context"
	"io"
)

// StorageClient abstracts the bucket operations handlers need, so tests can
// swap in a fake.
type StorageClient interface {
	Bucket() string
	UploadMenuImage(ctx context.Context, itemID int64, file io.Reader, filename, contentType string) (string, error)
	ImportMenuImage(ctx context.Context, itemID int64, imageURL string) (string, error)
	DeleteFile(ctx context.Context, objectPath string) error
}

var _ StorageClient = (*FirebaseStorageClient)(nil)

package handlers

import (
	"context"
	"fmt"
	"io"
	"sync"
)

const testBucket = "test-bucket"

type mockStorage struct {
	mu sync.Mutex

	UploadMenuImageFn func(itemID int64, filename, contentType string) (string, error)
	ImportMenuImageFn func(itemID int64, imageURL string) (string, error)
	DeleteFileFn      func(objectPath string) error

	DeleteFileCalls  []string
	UploadCallCount  int
	LastContentType  string
	LastUploadedSize int
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		DeleteFileCalls: []string{},
	}
}

func (m *mockStorage) Bucket() string {
	return testBucket
}

func (m *mockStorage) UploadMenuImage(ctx context.Context, itemID int64, file io.Reader, filename, contentType string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.UploadCallCount++
	m.LastContentType = contentType
	m.LastUploadedSize = len(data)
	m.mu.Unlock()

	if m.UploadMenuImageFn != nil {
		return m.UploadMenuImageFn(itemID, filename, contentType)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/menu/%d_%s", testBucket, itemID, filename), nil
}

func (m *mockStorage) ImportMenuImage(ctx context.Context, itemID int64, imageURL string) (string, error) {
	m.mu.Lock()
	m.UploadCallCount++
	m.mu.Unlock()

	if m.ImportMenuImageFn != nil {
		return m.ImportMenuImageFn(itemID, imageURL)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/menu/%d_imported.jpg", testBucket, itemID), nil
}

func (m *mockStorage) DeleteFile(ctx context.Context, objectPath string) error {
	m.mu.Lock()
	m.DeleteFileCalls = append(m.DeleteFileCalls, objectPath)
	m.mu.Unlock()

	if m.DeleteFileFn != nil {
		return m.DeleteFileFn(objectPath)
	}
	return nil
}

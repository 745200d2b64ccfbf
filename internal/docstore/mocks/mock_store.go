package mocks

import (
	"context"
	"io"
	"time"

	"clouddocs/internal/docstore"
	"clouddocs/internal/model"
	"clouddocs/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListDocuments(ctx context.Context, ownerID string) ([]model.Document, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockStore) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockStore) DeleteDocument(ctx context.Context, id, ownerID string) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockStore) DeleteBlob(ctx context.Context, blobKey string) error {
	args := m.Called(ctx, blobKey)
	return args.Error(0)
}

func (m *MockStore) UploadBlob(ctx context.Context, in docstore.UploadInput, onProgress docstore.ProgressFunc) (*docstore.UploadResult, error) {
	args := m.Called(ctx, in, onProgress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docstore.UploadResult), args.Error(1)
}

func (m *MockStore) OpenBlob(ctx context.Context, blobKey string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, blobKey)
	var rc io.ReadCloser
	if v := args.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	return rc, args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockStore) PresignDownload(ctx context.Context, blobKey string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, blobKey, expiry)
	return args.String(0), args.Error(1)
}

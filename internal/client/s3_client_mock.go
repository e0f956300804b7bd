package client

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MockImageStore implements ImageStore for testing without AWS credentials
type MockImageStore struct {
	Bucket   string
	Region   string
	Endpoint string

	// Optional function overrides for custom test behavior
	GenerateImageKeyFunc func(fileExt string) string
	UploadImageFunc      func(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	DeleteImageFunc      func(ctx context.Context, key string) error
	GetImageURLFunc      func(key string) string

	// Uploaded records the keys passed to UploadImage
	Uploaded []string
}

// NewMockImageStore creates a new mock image store for testing
func NewMockImageStore() *MockImageStore {
	return &MockImageStore{
		Bucket: "test-bucket",
		Region: "ap-northeast-2",
	}
}

func (m *MockImageStore) GenerateImageKey(fileExt string) string {
	if m.GenerateImageKeyFunc != nil {
		return m.GenerateImageKeyFunc(fileExt)
	}
	now := time.Now()
	return fmt.Sprintf("posts/%s/%s/%s_%d%s",
		now.Format("2006"), now.Format("01"), uuid.New().String(), now.Unix(), fileExt)
}

func (m *MockImageStore) UploadImage(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	if m.UploadImageFunc != nil {
		return m.UploadImageFunc(ctx, key, file, contentType)
	}
	m.Uploaded = append(m.Uploaded, key)
	return m.GetImageURL(key), nil
}

func (m *MockImageStore) DeleteImage(ctx context.Context, key string) error {
	if m.DeleteImageFunc != nil {
		return m.DeleteImageFunc(ctx, key)
	}
	return nil
}

func (m *MockImageStore) GetImageURL(key string) string {
	if m.GetImageURLFunc != nil {
		return m.GetImageURLFunc(key)
	}
	if m.Endpoint != "" && !strings.Contains(m.Endpoint, "amazonaws.com") {
		return fmt.Sprintf("%s/%s/%s", m.Endpoint, m.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Bucket, m.Region, key)
}

var _ ImageStore = (*MockImageStore)(nil)

package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"social-feed-api/internal/cache"
	"social-feed-api/internal/domain"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *domain.User) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	CountFunc          func(ctx context.Context) (int64, error)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockGroupRepository is a mock implementation of repository.GroupRepository
type MockGroupRepository struct {
	CreateFunc     func(ctx context.Context, group *domain.Group) error
	FindBySlugFunc func(ctx context.Context, slug string) (*domain.Group, error)
	FindAllFunc    func(ctx context.Context) ([]*domain.Group, error)
}

func (m *MockGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, group)
	}
	return nil
}

func (m *MockGroupRepository) FindBySlug(ctx context.Context, slug string) (*domain.Group, error) {
	if m.FindBySlugFunc != nil {
		return m.FindBySlugFunc(ctx, slug)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockGroupRepository) FindAll(ctx context.Context) ([]*domain.Group, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

// MockPostRepository is a mock implementation of repository.PostRepository
type MockPostRepository struct {
	CreateFunc            func(ctx context.Context, post *domain.Post) error
	UpdateFunc            func(ctx context.Context, post *domain.Post) error
	FindByIDAndAuthorFunc func(ctx context.Context, id, authorID uuid.UUID) (*domain.Post, error)
	FindAllFunc           func(ctx context.Context, offset, limit int) ([]*domain.Post, error)
	CountAllFunc          func(ctx context.Context) (int64, error)
	FindByGroupFunc       func(ctx context.Context, groupID uuid.UUID, offset, limit int) ([]*domain.Post, error)
	CountByGroupFunc      func(ctx context.Context, groupID uuid.UUID) (int64, error)
	FindByAuthorFunc      func(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]*domain.Post, error)
	CountByAuthorFunc     func(ctx context.Context, authorID uuid.UUID) (int64, error)
	FindFollowedFunc      func(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Post, error)
	CountFollowedFunc     func(ctx context.Context, userID uuid.UUID) (int64, error)
}

func (m *MockPostRepository) Create(ctx context.Context, post *domain.Post) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, post)
	}
	return nil
}

func (m *MockPostRepository) Update(ctx context.Context, post *domain.Post) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, post)
	}
	return nil
}

func (m *MockPostRepository) FindByIDAndAuthor(ctx context.Context, id, authorID uuid.UUID) (*domain.Post, error) {
	if m.FindByIDAndAuthorFunc != nil {
		return m.FindByIDAndAuthorFunc(ctx, id, authorID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockPostRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.Post, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, offset, limit)
	}
	return nil, nil
}

func (m *MockPostRepository) CountAll(ctx context.Context) (int64, error) {
	if m.CountAllFunc != nil {
		return m.CountAllFunc(ctx)
	}
	return 0, nil
}

func (m *MockPostRepository) FindByGroup(ctx context.Context, groupID uuid.UUID, offset, limit int) ([]*domain.Post, error) {
	if m.FindByGroupFunc != nil {
		return m.FindByGroupFunc(ctx, groupID, offset, limit)
	}
	return nil, nil
}

func (m *MockPostRepository) CountByGroup(ctx context.Context, groupID uuid.UUID) (int64, error) {
	if m.CountByGroupFunc != nil {
		return m.CountByGroupFunc(ctx, groupID)
	}
	return 0, nil
}

func (m *MockPostRepository) FindByAuthor(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]*domain.Post, error) {
	if m.FindByAuthorFunc != nil {
		return m.FindByAuthorFunc(ctx, authorID, offset, limit)
	}
	return nil, nil
}

func (m *MockPostRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	if m.CountByAuthorFunc != nil {
		return m.CountByAuthorFunc(ctx, authorID)
	}
	return 0, nil
}

func (m *MockPostRepository) FindFollowed(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Post, error) {
	if m.FindFollowedFunc != nil {
		return m.FindFollowedFunc(ctx, userID, offset, limit)
	}
	return nil, nil
}

func (m *MockPostRepository) CountFollowed(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.CountFollowedFunc != nil {
		return m.CountFollowedFunc(ctx, userID)
	}
	return 0, nil
}

// MockCommentRepository is a mock implementation of repository.CommentRepository
type MockCommentRepository struct {
	CreateFunc       func(ctx context.Context, comment *domain.Comment) error
	FindByPostIDFunc func(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	if m.FindByPostIDFunc != nil {
		return m.FindByPostIDFunc(ctx, postID)
	}
	return nil, nil
}

// MockFollowRepository is a mock implementation of repository.FollowRepository
type MockFollowRepository struct {
	CreateFunc             func(ctx context.Context, userID, authorID uuid.UUID) error
	DeleteFunc             func(ctx context.Context, userID, authorID uuid.UUID) error
	ExistsFunc             func(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
	CountSubscriptionsFunc func(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFollowersFunc     func(ctx context.Context, authorID uuid.UUID) (int64, error)
	CountFunc              func(ctx context.Context) (int64, error)
}

func (m *MockFollowRepository) Create(ctx context.Context, userID, authorID uuid.UUID) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, authorID)
	}
	return nil
}

func (m *MockFollowRepository) Delete(ctx context.Context, userID, authorID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, authorID)
	}
	return nil
}

func (m *MockFollowRepository) Exists(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, userID, authorID)
	}
	return false, nil
}

func (m *MockFollowRepository) CountSubscriptions(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.CountSubscriptionsFunc != nil {
		return m.CountSubscriptionsFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockFollowRepository) CountFollowers(ctx context.Context, authorID uuid.UUID) (int64, error) {
	if m.CountFollowersFunc != nil {
		return m.CountFollowersFunc(ctx, authorID)
	}
	return 0, nil
}

func (m *MockFollowRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockImageStore is a mock implementation of client.ImageStore
type MockImageStore struct {
	GenerateImageKeyFunc func(fileExt string) string
	UploadImageFunc      func(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	DeleteImageFunc      func(ctx context.Context, key string) error
	GetImageURLFunc      func(key string) string
}

func (m *MockImageStore) GenerateImageKey(fileExt string) string {
	if m.GenerateImageKeyFunc != nil {
		return m.GenerateImageKeyFunc(fileExt)
	}
	return "posts/test-key" + fileExt
}

func (m *MockImageStore) UploadImage(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	if m.UploadImageFunc != nil {
		return m.UploadImageFunc(ctx, key, file, contentType)
	}
	return "https://images.example.com/" + key, nil
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
	return "https://images.example.com/" + key
}

// recordingStore is an in-memory cache.Store that records prefix clears
type recordingStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	clears  int
}

func newRecordingStore() *recordingStore {
	return &recordingStore{entries: map[string][]byte{}}
}

func (s *recordingStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.entries[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return body, nil
}

func (s *recordingStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *recordingStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	for key := range s.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(s.entries, key)
		}
	}
	return nil
}

func (s *recordingStore) clearCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}

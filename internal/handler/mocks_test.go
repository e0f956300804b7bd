package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"social-feed-api/internal/cache"
	"social-feed-api/internal/dto"
)

// MockPostService is a mock implementation of service.PostService
type MockPostService struct {
	CreatePostFunc    func(ctx context.Context, authorID uuid.UUID, form *dto.PostForm) (*dto.PostResponse, error)
	UpdatePostFunc    func(ctx context.Context, currentUserID uuid.UUID, username string, postID uuid.UUID, form *dto.PostForm) (*dto.PostResponse, error)
	GetEditFormFunc   func(ctx context.Context, currentUserID uuid.UUID, username string, postID uuid.UUID) (*dto.PostFormDescriptor, error)
	GetPostDetailFunc func(ctx context.Context, username string, postID uuid.UUID, viewerID *uuid.UUID) (*dto.PostDetailResponse, error)
	IndexFeedFunc     func(ctx context.Context, page int) (*dto.FeedResponse, error)
	GroupFeedFunc     func(ctx context.Context, slug string, page int) (*dto.GroupFeedResponse, error)
	FollowFeedFunc    func(ctx context.Context, userID uuid.UUID, page int) (*dto.FeedResponse, error)
}

func (m *MockPostService) CreatePost(ctx context.Context, authorID uuid.UUID, form *dto.PostForm) (*dto.PostResponse, error) {
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(ctx, authorID, form)
	}
	return &dto.PostResponse{}, nil
}

func (m *MockPostService) UpdatePost(ctx context.Context, currentUserID uuid.UUID, username string, postID uuid.UUID, form *dto.PostForm) (*dto.PostResponse, error) {
	if m.UpdatePostFunc != nil {
		return m.UpdatePostFunc(ctx, currentUserID, username, postID, form)
	}
	return &dto.PostResponse{}, nil
}

func (m *MockPostService) GetEditForm(ctx context.Context, currentUserID uuid.UUID, username string, postID uuid.UUID) (*dto.PostFormDescriptor, error) {
	if m.GetEditFormFunc != nil {
		return m.GetEditFormFunc(ctx, currentUserID, username, postID)
	}
	form := dto.NewPostFormDescriptor()
	return &form, nil
}

func (m *MockPostService) GetPostDetail(ctx context.Context, username string, postID uuid.UUID, viewerID *uuid.UUID) (*dto.PostDetailResponse, error) {
	if m.GetPostDetailFunc != nil {
		return m.GetPostDetailFunc(ctx, username, postID, viewerID)
	}
	return &dto.PostDetailResponse{}, nil
}

func (m *MockPostService) IndexFeed(ctx context.Context, page int) (*dto.FeedResponse, error) {
	if m.IndexFeedFunc != nil {
		return m.IndexFeedFunc(ctx, page)
	}
	return &dto.FeedResponse{Posts: []dto.PostResponse{}}, nil
}

func (m *MockPostService) GroupFeed(ctx context.Context, slug string, page int) (*dto.GroupFeedResponse, error) {
	if m.GroupFeedFunc != nil {
		return m.GroupFeedFunc(ctx, slug, page)
	}
	return &dto.GroupFeedResponse{}, nil
}

func (m *MockPostService) FollowFeed(ctx context.Context, userID uuid.UUID, page int) (*dto.FeedResponse, error) {
	if m.FollowFeedFunc != nil {
		return m.FollowFeedFunc(ctx, userID, page)
	}
	return &dto.FeedResponse{Posts: []dto.PostResponse{}}, nil
}

// MockCommentService is a mock implementation of service.CommentService
type MockCommentService struct {
	AddCommentFunc func(ctx context.Context, userID uuid.UUID, username string, postID uuid.UUID, form *dto.CommentForm) (*dto.CommentResponse, error)
}

func (m *MockCommentService) AddComment(ctx context.Context, userID uuid.UUID, username string, postID uuid.UUID, form *dto.CommentForm) (*dto.CommentResponse, error) {
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, userID, username, postID, form)
	}
	return &dto.CommentResponse{}, nil
}

// MockFollowService is a mock implementation of service.FollowService
type MockFollowService struct {
	FollowFunc   func(ctx context.Context, userID uuid.UUID, username string) error
	UnfollowFunc func(ctx context.Context, userID uuid.UUID, username string) error
}

func (m *MockFollowService) Follow(ctx context.Context, userID uuid.UUID, username string) error {
	if m.FollowFunc != nil {
		return m.FollowFunc(ctx, userID, username)
	}
	return nil
}

func (m *MockFollowService) Unfollow(ctx context.Context, userID uuid.UUID, username string) error {
	if m.UnfollowFunc != nil {
		return m.UnfollowFunc(ctx, userID, username)
	}
	return nil
}

// memStore is an in-memory cache.Store
type memStore struct {
	entries map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{entries: map[string][]byte{}}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	body, ok := s.entries[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return body, nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.entries[key] = value
	return nil
}

func (s *memStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	for key := range s.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(s.entries, key)
		}
	}
	return nil
}

// asUser simulates the auth middleware for handler-level tests
func asUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

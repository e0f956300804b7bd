package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"social-feed-api/internal/domain"
)

// PostRepository defines post data access. All feed queries order
// newest-first on the immutable creation timestamp.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	Update(ctx context.Context, post *domain.Post) error
	FindByIDAndAuthor(ctx context.Context, id, authorID uuid.UUID) (*domain.Post, error)
	FindAll(ctx context.Context, offset, limit int) ([]*domain.Post, error)
	CountAll(ctx context.Context) (int64, error)
	FindByGroup(ctx context.Context, groupID uuid.UUID, offset, limit int) ([]*domain.Post, error)
	CountByGroup(ctx context.Context, groupID uuid.UUID) (int64, error)
	FindByAuthor(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]*domain.Post, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
	FindFollowed(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Post, error)
	CountFollowed(ctx context.Context, userID uuid.UUID) (int64, error)
}

type postRepositoryImpl struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepositoryImpl{db: db}
}

func (r *postRepositoryImpl) Create(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepositoryImpl) Update(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// FindByIDAndAuthor scopes the lookup to the author so a post requested
// under the wrong username resolves to not-found
func (r *postRepositoryImpl) FindByIDAndAuthor(ctx context.Context, id, authorID uuid.UUID) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("id = ? AND author_id = ?", id, authorID).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepositoryImpl) FindAll(ctx context.Context, offset, limit int) ([]*domain.Post, error) {
	var posts []*domain.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Post{}).Count(&count).Error
	return count, err
}

func (r *postRepositoryImpl) FindByGroup(ctx context.Context, groupID uuid.UUID, offset, limit int) ([]*domain.Post, error) {
	var posts []*domain.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepositoryImpl) CountByGroup(ctx context.Context, groupID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Post{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}

func (r *postRepositoryImpl) FindByAuthor(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]*domain.Post, error) {
	var posts []*domain.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepositoryImpl) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// FindFollowed returns posts authored by anyone the user follows
func (r *postRepositoryImpl) FindFollowed(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Post, error) {
	var posts []*domain.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Joins("JOIN follows ON follows.author_id = posts.author_id AND follows.user_id = ?", userID).
		Order("posts.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepositoryImpl) CountFollowed(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Joins("JOIN follows ON follows.author_id = posts.author_id AND follows.user_id = ?", userID).
		Count(&count).Error
	return count, err
}

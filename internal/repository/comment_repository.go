package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"social-feed-api/internal/domain"
)

// CommentRepository defines comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
}

type commentRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: db}
}

func (r *commentRepositoryImpl) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// FindByPostID returns a post's comments newest-last with authors joined
func (r *commentRepositoryImpl) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"social-feed-api/internal/domain"
)

// FollowRepository defines follow-edge data access. Create is idempotent:
// the composite unique index plus ON CONFLICT DO NOTHING makes concurrent
// duplicate subscribes collapse to a single row.
type FollowRepository interface {
	Create(ctx context.Context, userID, authorID uuid.UUID) error
	Delete(ctx context.Context, userID, authorID uuid.UUID) error
	Exists(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
	CountSubscriptions(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFollowers(ctx context.Context, authorID uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type followRepositoryImpl struct {
	db *gorm.DB
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepositoryImpl{db: db}
}

func (r *followRepositoryImpl) Create(ctx context.Context, userID, authorID uuid.UUID) error {
	follow := &domain.Follow{UserID: userID, AuthorID: authorID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "author_id"}},
			DoNothing: true,
		}).
		Create(follow).Error
}

func (r *followRepositoryImpl) Delete(ctx context.Context, userID, authorID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&domain.Follow{}).Error
}

func (r *followRepositoryImpl) Exists(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

// CountSubscriptions counts the authors the user follows
func (r *followRepositoryImpl) CountSubscriptions(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountFollowers counts the users following the author
func (r *followRepositoryImpl) CountFollowers(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (r *followRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).Count(&count).Error
	return count, err
}

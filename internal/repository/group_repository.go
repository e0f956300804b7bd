package repository

import (
	"context"

	"gorm.io/gorm"

	"social-feed-api/internal/domain"
)

// GroupRepository defines group data access
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	FindBySlug(ctx context.Context, slug string) (*domain.Group, error)
	FindAll(ctx context.Context) ([]*domain.Group, error)
}

type groupRepositoryImpl struct {
	db *gorm.DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepositoryImpl{db: db}
}

func (r *groupRepositoryImpl) Create(ctx context.Context, group *domain.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*domain.Group, error) {
	var group domain.Group
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Group, error) {
	var groups []*domain.Group
	err := r.db.WithContext(ctx).Order("title ASC").Find(&groups).Error
	return groups, err
}

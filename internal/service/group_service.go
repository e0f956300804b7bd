package service

import (
	"context"

	"social-feed-api/internal/dto"
	"social-feed-api/internal/repository"
	"social-feed-api/internal/response"
)

// GroupService defines the interface for group listings
type GroupService interface {
	ListGroups(ctx context.Context) ([]dto.GroupResponse, error)
}

type groupServiceImpl struct {
	groupRepo repository.GroupRepository
}

// NewGroupService creates a new instance of GroupService
func NewGroupService(groupRepo repository.GroupRepository) GroupService {
	return &groupServiceImpl{groupRepo: groupRepo}
}

func (s *groupServiceImpl) ListGroups(ctx context.Context) ([]dto.GroupResponse, error) {
	groups, err := s.groupRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load groups", err.Error())
	}

	out := make([]dto.GroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupResponse(g))
	}
	return out, nil
}

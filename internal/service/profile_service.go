package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"social-feed-api/internal/domain"
	"social-feed-api/internal/dto"
	"social-feed-api/internal/repository"
	"social-feed-api/internal/response"
)

// ProfileService defines the interface for profile pages
type ProfileService interface {
	GetProfileFeed(ctx context.Context, username string, viewerID *uuid.UUID, page int) (*dto.ProfileFeedResponse, error)
}

type profileServiceImpl struct {
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
}

// NewProfileService creates a new instance of ProfileService
func NewProfileService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
) ProfileService {
	return &profileServiceImpl{
		userRepo:   userRepo,
		postRepo:   postRepo,
		followRepo: followRepo,
	}
}

// GetProfileFeed returns one user's posts, the profile counters and whether
// the authenticated viewer follows the profile
func (s *profileServiceImpl) GetProfileFeed(ctx context.Context, username string, viewerID *uuid.UUID, page int) (*dto.ProfileFeedResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
	}

	profile, err := buildProfile(ctx, user, viewerID, s.postRepo, s.followRepo)
	if err != nil {
		return nil, err
	}

	resolved := dto.ResolvePage(page, profile.Counters.Posts, dto.PageSize)
	posts, err := s.postRepo.FindByAuthor(ctx, user.ID, resolved.Offset(dto.PageSize), dto.PageSize)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load posts", err.Error())
	}

	return &dto.ProfileFeedResponse{
		Profile: *profile,
		Posts:   toPostResponses(posts),
		Page:    resolved,
	}, nil
}

// buildProfile computes the profile header: the three independent counters
// (posts, subscriptions, followers) and the viewer's follow state
func buildProfile(
	ctx context.Context,
	user *domain.User,
	viewerID *uuid.UUID,
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
) (*dto.ProfileResponse, error) {
	posts, err := postRepo.CountByAuthor(ctx, user.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count posts", err.Error())
	}
	subscriptions, err := followRepo.CountSubscriptions(ctx, user.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count subscriptions", err.Error())
	}
	followers, err := followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count followers", err.Error())
	}

	following := false
	if viewerID != nil {
		following, err = followRepo.Exists(ctx, *viewerID, user.ID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check follow state", err.Error())
		}
	}

	return &dto.ProfileResponse{
		UserID:   user.ID,
		Username: user.Username,
		Counters: dto.Counters{
			Posts:         posts,
			Subscriptions: subscriptions,
			Followers:     followers,
		},
		Following: following,
	}, nil
}

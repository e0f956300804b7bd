package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"social-feed-api/internal/metrics"
	"social-feed-api/internal/repository"
	"social-feed-api/internal/response"
)

// FollowService defines the interface for follow-graph operations
type FollowService interface {
	Follow(ctx context.Context, userID uuid.UUID, username string) error
	Unfollow(ctx context.Context, userID uuid.UUID, username string) error
}

type followServiceImpl struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewFollowService creates a new instance of FollowService
func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) FollowService {
	return &followServiceImpl{
		followRepo: followRepo,
		userRepo:   userRepo,
		metrics:    m,
		logger:     logger,
	}
}

// Follow subscribes the user to the author. Self-follow is a no-op and
// re-subscribing is idempotent: the unique (user, author) pair plus the
// conflict-tolerant insert guarantee at most one edge.
func (s *followServiceImpl) Follow(ctx context.Context, userID uuid.UUID, username string) error {
	author, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return notFoundOrInternal(err, "User not found", "Failed to load user")
	}

	if author.ID == userID {
		return nil
	}

	if err := s.followRepo.Create(ctx, userID, author.ID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to create follow", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementFollowCreated()
	}

	s.logger.Info("Follow created",
		zap.String("user_id", userID.String()),
		zap.String("author_id", author.ID.String()),
	)
	return nil
}

// Unfollow removes the follow edge if it exists; missing edges and
// self-unfollow are no-ops
func (s *followServiceImpl) Unfollow(ctx context.Context, userID uuid.UUID, username string) error {
	author, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return notFoundOrInternal(err, "User not found", "Failed to load user")
	}

	if author.ID == userID {
		return nil
	}

	if err := s.followRepo.Delete(ctx, userID, author.ID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete follow", err.Error())
	}
	return nil
}

// notFoundOrInternal maps a repository error to not-found or internal
func notFoundOrInternal(err error, notFoundMsg, internalMsg string) *response.AppError {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewAppError(response.ErrCodeNotFound, notFoundMsg, "")
	}
	return response.NewAppError(response.ErrCodeInternal, internalMsg, err.Error())
}

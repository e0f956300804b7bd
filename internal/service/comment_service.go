package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"social-feed-api/internal/domain"
	"social-feed-api/internal/dto"
	"social-feed-api/internal/metrics"
	"social-feed-api/internal/repository"
	"social-feed-api/internal/response"
)

// CommentService defines the interface for comment business logic
type CommentService interface {
	AddComment(ctx context.Context, userID uuid.UUID, username string, postID uuid.UUID, form *dto.CommentForm) (*dto.CommentResponse, error)
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		metrics:     m,
		logger:      logger,
	}
}

// AddComment validates the comment form and attaches the comment to the
// post and the current user
func (s *commentServiceImpl) AddComment(ctx context.Context, userID uuid.UUID, username string, postID uuid.UUID, form *dto.CommentForm) (*dto.CommentResponse, error) {
	post, err := findPostForComment(ctx, s.userRepo, s.postRepo, username, postID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(form.Text) == "" {
		return nil, response.NewValidationError(map[string]string{
			"text": "This field is required.",
		})
	}

	comment := &domain.Comment{
		PostID:   post.ID,
		AuthorID: userID,
		Text:     strings.TrimSpace(form.Text),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create comment", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementCommentCreated()
	}

	s.logger.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("post_id", post.ID.String()),
		zap.String("author_id", userID.String()),
	)

	author, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load author", err.Error())
	}
	comment.Author = *author

	resp := toCommentResponse(comment)
	return &resp, nil
}

// findPostForComment resolves the comment target, mapping unknown users and
// posts under the wrong username to not-found
func findPostForComment(
	ctx context.Context,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	username string,
	postID uuid.UUID,
) (*domain.Post, error) {
	author, err := userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFoundOrInternal(err, "User not found", "Failed to load user")
	}
	post, err := postRepo.FindByIDAndAuthor(ctx, postID, author.ID)
	if err != nil {
		return nil, notFoundOrInternal(err, "Post not found", "Failed to load post")
	}
	return post, nil
}

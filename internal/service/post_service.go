package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"social-feed-api/internal/cache"
	"social-feed-api/internal/client"
	"social-feed-api/internal/domain"
	"social-feed-api/internal/dto"
	"social-feed-api/internal/metrics"
	"social-feed-api/internal/repository"
	"social-feed-api/internal/response"
)

// PostService defines the interface for post business logic
type PostService interface {
	CreatePost(ctx context.Context, authorID uuid.UUID, form *dto.PostForm) (*dto.PostResponse, error)
	UpdatePost(ctx context.Context, currentUserID uuid.UUID, username string, postID uuid.UUID, form *dto.PostForm) (*dto.PostResponse, error)
	GetEditForm(ctx context.Context, currentUserID uuid.UUID, username string, postID uuid.UUID) (*dto.PostFormDescriptor, error)
	GetPostDetail(ctx context.Context, username string, postID uuid.UUID, viewerID *uuid.UUID) (*dto.PostDetailResponse, error)
	IndexFeed(ctx context.Context, page int) (*dto.FeedResponse, error)
	GroupFeed(ctx context.Context, slug string, page int) (*dto.GroupFeedResponse, error)
	FollowFeed(ctx context.Context, userID uuid.UUID, page int) (*dto.FeedResponse, error)
}

type postServiceImpl struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
	imageStore  client.ImageStore
	pageCache   *cache.PageCache
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewPostService creates a new instance of PostService
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	groupRepo repository.GroupRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
	imageStore client.ImageStore,
	pageCache *cache.PageCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) PostService {
	return &postServiceImpl{
		postRepo:    postRepo,
		userRepo:    userRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		imageStore:  imageStore,
		pageCache:   pageCache,
		metrics:     m,
		logger:      logger,
	}
}

// CreatePost validates the submitted form and persists a new post with the
// author forced to the current user. On success the cached index pages are
// cleared so the next index request reflects the new post.
func (s *postServiceImpl) CreatePost(ctx context.Context, authorID uuid.UUID, form *dto.PostForm) (*dto.PostResponse, error) {
	group, imageURL, err := s.validateForm(ctx, form)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		Text:     strings.TrimSpace(form.Text),
		AuthorID: authorID,
		ImageURL: imageURL,
	}
	if group != nil {
		post.GroupID = &group.ID
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create post", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementPostCreated()
	}
	s.pageCache.ClearIndex(ctx)

	s.logger.Info("Post created",
		zap.String("post_id", post.ID.String()),
		zap.String("author_id", authorID.String()),
	)

	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load author", err.Error())
	}
	post.Author = *author
	post.Group = group

	resp := toPostResponse(post)
	return &resp, nil
}

// UpdatePost re-validates and re-saves a post. Only the original author may
// edit; anyone else gets a forbidden error which the handler turns into a
// silent redirect to the post view.
func (s *postServiceImpl) UpdatePost(ctx context.Context, currentUserID uuid.UUID, username string, postID uuid.UUID, form *dto.PostForm) (*dto.PostResponse, error) {
	post, err := s.findAuthorPost(ctx, username, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != currentUserID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the author may edit this post", "")
	}

	group, imageURL, err := s.validateForm(ctx, form)
	if err != nil {
		return nil, err
	}

	post.Text = strings.TrimSpace(form.Text)
	if group != nil {
		post.GroupID = &group.ID
	} else {
		post.GroupID = nil
	}
	if imageURL != nil {
		post.ImageURL = imageURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update post", err.Error())
	}

	s.pageCache.ClearIndex(ctx)

	post.Group = group
	resp := toPostResponse(post)
	return &resp, nil
}

// GetEditForm returns the pre-filled form for the edit page, with the same
// author-only rule as UpdatePost
func (s *postServiceImpl) GetEditForm(ctx context.Context, currentUserID uuid.UUID, username string, postID uuid.UUID) (*dto.PostFormDescriptor, error) {
	post, err := s.findAuthorPost(ctx, username, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != currentUserID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the author may edit this post", "")
	}

	form := dto.NewPostFormDescriptor()
	values := &dto.PostFormValues{Text: post.Text}
	if post.Group != nil {
		values.GroupSlug = post.Group.Slug
	}
	if post.ImageURL != nil {
		values.ImageURL = *post.ImageURL
	}
	form.Values = values
	return &form, nil
}

// GetPostDetail returns one post scoped to its author's username, its
// comments newest-last, the empty comment form and the author's profile
// header
func (s *postServiceImpl) GetPostDetail(ctx context.Context, username string, postID uuid.UUID, viewerID *uuid.UUID) (*dto.PostDetailResponse, error) {
	author, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
	}

	post, err := s.postRepo.FindByIDAndAuthor(ctx, postID, author.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Post not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load post", err.Error())
	}

	comments, err := s.commentRepo.FindByPostID(ctx, post.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load comments", err.Error())
	}

	profile, err := buildProfile(ctx, author, viewerID, s.postRepo, s.followRepo)
	if err != nil {
		return nil, err
	}

	commentResponses := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		commentResponses = append(commentResponses, toCommentResponse(c))
	}

	return &dto.PostDetailResponse{
		Post:        toPostResponse(post),
		Comments:    commentResponses,
		CommentForm: dto.NewCommentFormDescriptor(),
		Profile:     *profile,
	}, nil
}

// IndexFeed returns one page of all posts, newest first
func (s *postServiceImpl) IndexFeed(ctx context.Context, page int) (*dto.FeedResponse, error) {
	total, err := s.postRepo.CountAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count posts", err.Error())
	}

	resolved := dto.ResolvePage(page, total, dto.PageSize)
	posts, err := s.postRepo.FindAll(ctx, resolved.Offset(dto.PageSize), dto.PageSize)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load posts", err.Error())
	}

	return &dto.FeedResponse{Posts: toPostResponses(posts), Page: resolved}, nil
}

// GroupFeed returns one page of a group's posts; unknown slugs are not found
func (s *postServiceImpl) GroupFeed(ctx context.Context, slug string, page int) (*dto.GroupFeedResponse, error) {
	group, err := s.groupRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Group not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load group", err.Error())
	}

	total, err := s.postRepo.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count posts", err.Error())
	}

	resolved := dto.ResolvePage(page, total, dto.PageSize)
	posts, err := s.postRepo.FindByGroup(ctx, group.ID, resolved.Offset(dto.PageSize), dto.PageSize)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load posts", err.Error())
	}

	return &dto.GroupFeedResponse{
		Group: toGroupResponse(group),
		Posts: toPostResponses(posts),
		Page:  resolved,
	}, nil
}

// FollowFeed returns one page of posts authored by anyone the user follows
func (s *postServiceImpl) FollowFeed(ctx context.Context, userID uuid.UUID, page int) (*dto.FeedResponse, error) {
	total, err := s.postRepo.CountFollowed(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count posts", err.Error())
	}

	resolved := dto.ResolvePage(page, total, dto.PageSize)
	posts, err := s.postRepo.FindFollowed(ctx, userID, resolved.Offset(dto.PageSize), dto.PageSize)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load posts", err.Error())
	}

	return &dto.FeedResponse{Posts: toPostResponses(posts), Page: resolved}, nil
}

// findAuthorPost resolves a post scoped to the given username, mapping both
// the unknown-user and wrong-author cases to not-found
func (s *postServiceImpl) findAuthorPost(ctx context.Context, username string, postID uuid.UUID) (*domain.Post, error) {
	author, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
	}

	post, err := s.postRepo.FindByIDAndAuthor(ctx, postID, author.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Post not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load post", err.Error())
	}
	return post, nil
}

// validateForm checks the submitted post fields and uploads the image when
// one is attached. Returns the resolved group (nil when the field is empty)
// and the stored image URL (nil when no image was submitted).
func (s *postServiceImpl) validateForm(ctx context.Context, form *dto.PostForm) (*domain.Group, *string, error) {
	fields := map[string]string{}

	if strings.TrimSpace(form.Text) == "" {
		fields["text"] = "This field is required."
	}

	var group *domain.Group
	if form.GroupSlug != "" {
		g, err := s.groupRepo.FindBySlug(ctx, form.GroupSlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				fields["group"] = "Select a valid group or leave the field empty."
			} else {
				return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to load group", err.Error())
			}
		} else {
			group = g
		}
	}

	var imageData []byte
	var imageContentType string
	if form.Image != nil {
		data, contentType, err := readImage(form.Image)
		if err != nil {
			fields["image"] = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
		} else if s.imageStore == nil {
			fields["image"] = "Image uploads are not configured."
		} else {
			imageData = data
			imageContentType = contentType
		}
	}

	if len(fields) > 0 {
		return nil, nil, response.NewValidationError(fields)
	}

	var imageURL *string
	if imageData != nil {
		key := s.imageStore.GenerateImageKey(filepath.Ext(form.Image.Filename))
		start := time.Now()
		url, err := s.imageStore.UploadImage(ctx, key, bytes.NewReader(imageData), imageContentType)
		if s.metrics != nil {
			s.metrics.RecordImageUpload(time.Since(start), err)
		}
		if err != nil {
			return nil, nil, response.NewAppError(response.ErrCodeInternal, "Failed to store image", err.Error())
		}
		imageURL = &url
	}

	return group, imageURL, nil
}

// readImage reads the uploaded file and sniffs its content type; anything
// that does not sniff as an image is rejected
func readImage(fh *multipart.FileHeader) ([]byte, string, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty upload")
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("not an image: %s", contentType)
	}
	return data, contentType, nil
}

func toPostResponse(post *domain.Post) dto.PostResponse {
	resp := dto.PostResponse{
		PostID: post.ID,
		Text:   post.Text,
		Author: dto.AuthorRef{
			UserID:   post.AuthorID,
			Username: post.Author.Username,
		},
		ImageURL:  post.ImageURL,
		CreatedAt: post.CreatedAt,
	}
	if post.Group != nil {
		g := toGroupResponse(post.Group)
		resp.Group = &g
	}
	return resp
}

func toPostResponses(posts []*domain.Post) []dto.PostResponse {
	out := make([]dto.PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

func toGroupResponse(group *domain.Group) dto.GroupResponse {
	return dto.GroupResponse{
		GroupID:     group.ID,
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
	}
}

func toCommentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		CommentID: comment.ID,
		PostID:    comment.PostID,
		Author: dto.AuthorRef{
			UserID:   comment.AuthorID,
			Username: comment.Author.Username,
		},
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"social-feed-api/internal/cache"
	"social-feed-api/internal/dto"
	"social-feed-api/internal/metrics"
	"social-feed-api/internal/response"
	"social-feed-api/internal/service"
)

// PostHandler serves the feed pages and the post create/edit flow
type PostHandler struct {
	postService service.PostService
	pageCache   *cache.PageCache
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService service.PostService, pageCache *cache.PageCache, m *metrics.Metrics, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		pageCache:   pageCache,
		metrics:     m,
		logger:      logger,
	}
}

// Index godoc
// @Summary      Index feed
// @Description  Returns one page of all posts, newest first. Responses are cached for a short interval keyed by the query string; post create/edit clears the cache.
// @Tags         posts
// @Produce      json
// @Param        page query int false "Page number"
// @Success      200 {object} response.SuccessResponse{data=dto.FeedResponse}
// @Failure      500 {object} response.ErrorResponse
// @Router       / [get]
func (h *PostHandler) Index(c *gin.Context) {
	key := cache.Key(c.Request.URL.Query())
	if body, ok := h.pageCache.GetIndex(c.Request.Context(), key); ok {
		if h.metrics != nil {
			h.metrics.RecordCacheLookup(true)
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordCacheLookup(false)
	}

	feed, err := h.postService.IndexFeed(c.Request.Context(), pageParam(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	envelope := response.SuccessResponse{Data: feed}
	body, err := json.Marshal(envelope)
	if err != nil {
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Failed to render feed")
		return
	}

	h.pageCache.SetIndex(c.Request.Context(), key, body)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// NewPostForm godoc
// @Summary      New post form
// @Description  Returns the empty post form with its field labels and help texts
// @Tags         posts
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.PostFormDescriptor}
// @Router       /new [get]
func (h *PostHandler) NewPostForm(c *gin.Context) {
	form := dto.NewPostFormDescriptor()
	response.SendSuccess(c, http.StatusOK, form)
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post authored by the current user, with an optional group and image. Redirects to the index feed on success.
// @Tags         posts
// @Accept       mpfd
// @Produce      json
// @Param        text formData string true "Post text"
// @Param        group formData string false "Group slug"
// @Param        image formData file false "Post image"
// @Success      302
// @Failure      400 {object} response.ErrorResponse
// @Router       /new [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	form, err := bindPostForm(c)
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid form submission")
		return
	}

	if _, err := h.postService.CreatePost(c.Request.Context(), userID, form); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// PostView godoc
// @Summary      Post detail
// @Description  Returns one post scoped to its author's username, with its comments, the empty comment form and the author's profile header
// @Tags         posts
// @Produce      json
// @Param        username path string true "Author username"
// @Param        postId path string true "Post ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.PostDetailResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /{username}/{postId} [get]
func (h *PostHandler) PostView(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	detail, err := h.postService.GetPostDetail(c.Request.Context(), c.Param("username"), postID, viewerID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, detail)
}

// EditForm godoc
// @Summary      Post edit form
// @Description  Returns the post form pre-filled with the post's current values. Non-authors are redirected to the post view.
// @Tags         posts
// @Produce      json
// @Param        username path string true "Author username"
// @Param        postId path string true "Post ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.PostFormDescriptor}
// @Success      302
// @Failure      404 {object} response.ErrorResponse
// @Router       /{username}/{postId}/edit [get]
func (h *PostHandler) EditForm(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	form, err := h.postService.GetEditForm(c.Request.Context(), userID, c.Param("username"), postID)
	if err != nil {
		if redirectNonAuthor(c, err) {
			return
		}
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, form)
}

// UpdatePost godoc
// @Summary      Edit a post
// @Description  Re-validates and saves the post, then redirects to the post view. Non-authors are silently redirected to the post view without saving.
// @Tags         posts
// @Accept       mpfd
// @Produce      json
// @Param        username path string true "Author username"
// @Param        postId path string true "Post ID (UUID)"
// @Param        text formData string true "Post text"
// @Param        group formData string false "Group slug"
// @Param        image formData file false "Post image"
// @Success      302
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /{username}/{postId}/edit [post]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	form, err := bindPostForm(c)
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid form submission")
		return
	}

	if _, err := h.postService.UpdatePost(c.Request.Context(), userID, c.Param("username"), postID, form); err != nil {
		if redirectNonAuthor(c, err) {
			return
		}
		handleServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, postViewPath(c))
}

// bindPostForm reads the multipart post form. The image part is optional and
// its absence is not an error.
func bindPostForm(c *gin.Context) (*dto.PostForm, error) {
	form := &dto.PostForm{
		Text:      c.PostForm("text"),
		GroupSlug: c.PostForm("group"),
	}
	file, err := c.FormFile("image")
	if err == nil {
		form.Image = file
	} else if err != http.ErrMissingFile {
		return nil, err
	}
	return form, nil
}

// redirectNonAuthor turns the author-only error into the silent redirect to
// the post view
func redirectNonAuthor(c *gin.Context, err error) bool {
	if appErr, ok := err.(*response.AppError); ok && appErr.Code == response.ErrCodeForbidden {
		c.Redirect(http.StatusFound, postViewPath(c))
		return true
	}
	return false
}

// postViewPath rebuilds the post view path from the request params
func postViewPath(c *gin.Context) string {
	return "/" + c.Param("username") + "/" + c.Param("postId")
}

// postIDParam parses the postId path parameter
func postIDParam(c *gin.Context) (uuid.UUID, bool) {
	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Post not found")
		return uuid.Nil, false
	}
	return postID, true
}

// pageParam parses the page query parameter; anything unparsable counts as
// the first page
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

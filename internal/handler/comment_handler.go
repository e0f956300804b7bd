package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-feed-api/internal/dto"
	"social-feed-api/internal/response"
	"social-feed-api/internal/service"
)

// CommentHandler serves the comment submission flow
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// AddComment godoc
// @Summary      Comment on a post
// @Description  Attaches a comment to the post and redirects back to the post view. An invalid submission also redirects, with nothing saved.
// @Tags         comments
// @Accept       mpfd
// @Produce      json
// @Param        username path string true "Author username"
// @Param        postId path string true "Post ID (UUID)"
// @Param        text formData string true "Comment text"
// @Success      302
// @Failure      404 {object} response.ErrorResponse
// @Router       /{username}/{postId}/comment [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	form := &dto.CommentForm{Text: c.PostForm("text")}
	_, err := h.commentService.AddComment(c.Request.Context(), userID, c.Param("username"), postID, form)
	if err != nil {
		// An invalid submission redirects back to the post view with
		// nothing saved; the error is not re-shown
		if appErr, ok := err.(*response.AppError); ok && appErr.Code == response.ErrCodeValidation {
			c.Redirect(http.StatusFound, postViewPath(c))
			return
		}
		handleServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, postViewPath(c))
}

// CommentForm redirects a bare GET on the comment path back to the post view
// without touching anything
func (h *CommentHandler) CommentForm(c *gin.Context) {
	c.Redirect(http.StatusFound, postViewPath(c))
}

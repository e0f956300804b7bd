package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-feed-api/internal/response"
	"social-feed-api/internal/service"
)

// FollowHandler serves the follow feed and the follow/unfollow actions
type FollowHandler struct {
	followService service.FollowService
	postService   service.PostService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService service.FollowService, postService service.PostService) *FollowHandler {
	return &FollowHandler{
		followService: followService,
		postService:   postService,
	}
}

// FollowIndex godoc
// @Summary      Follow feed
// @Description  Returns one page of posts authored by anyone the current user follows, newest first
// @Tags         follows
// @Produce      json
// @Param        page query int false "Page number"
// @Success      200 {object} response.SuccessResponse{data=dto.FeedResponse}
// @Failure      401 {object} response.ErrorResponse
// @Router       /follow [get]
func (h *FollowHandler) FollowIndex(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	feed, err := h.postService.FollowFeed(c.Request.Context(), userID, pageParam(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, feed)
}

// Follow godoc
// @Summary      Follow a user
// @Description  Subscribes the current user to the author, then redirects to the author's profile. Following yourself or someone you already follow changes nothing.
// @Tags         follows
// @Produce      json
// @Param        username path string true "Author username"
// @Success      302
// @Failure      404 {object} response.ErrorResponse
// @Router       /{username}/follow [post]
func (h *FollowHandler) Follow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	username := c.Param("username")
	if err := h.followService.Follow(c.Request.Context(), userID, username); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/"+username)
}

// Unfollow godoc
// @Summary      Unfollow a user
// @Description  Removes the current user's subscription to the author, then redirects to the author's profile. Unfollowing someone you do not follow changes nothing.
// @Tags         follows
// @Produce      json
// @Param        username path string true "Author username"
// @Success      302
// @Failure      404 {object} response.ErrorResponse
// @Router       /{username}/unfollow [post]
func (h *FollowHandler) Unfollow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	username := c.Param("username")
	if err := h.followService.Unfollow(c.Request.Context(), userID, username); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/"+username)
}

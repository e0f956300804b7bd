package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-feed-api/internal/response"
	"social-feed-api/internal/service"
)

// GroupHandler serves the group listing and group feeds
type GroupHandler struct {
	groupService service.GroupService
	postService  service.PostService
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupService service.GroupService, postService service.PostService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		postService:  postService,
	}
}

// ListGroups godoc
// @Summary      List groups
// @Description  Returns every group ordered by title
// @Tags         groups
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.GroupResponse}
// @Failure      500 {object} response.ErrorResponse
// @Router       /groups [get]
func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.groupService.ListGroups(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, groups)
}

// GroupPosts godoc
// @Summary      Group feed
// @Description  Returns one page of the group's posts, newest first
// @Tags         groups
// @Produce      json
// @Param        slug path string true "Group slug"
// @Param        page query int false "Page number"
// @Success      200 {object} response.SuccessResponse{data=dto.GroupFeedResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /group/{slug} [get]
func (h *GroupHandler) GroupPosts(c *gin.Context) {
	feed, err := h.postService.GroupFeed(c.Request.Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, feed)
}

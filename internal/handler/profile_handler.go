package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-feed-api/internal/response"
	"social-feed-api/internal/service"
)

// ProfileHandler serves user profile pages
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Profile godoc
// @Summary      User profile
// @Description  Returns the user's posts with the profile header: post, subscription and follower counts, and whether the viewer follows the user
// @Tags         profiles
// @Produce      json
// @Param        username path string true "Username"
// @Param        page query int false "Page number"
// @Success      200 {object} response.SuccessResponse{data=dto.ProfileFeedResponse}
// @Failure      404 {object} response.ErrorResponse
// @Router       /{username} [get]
func (h *ProfileHandler) Profile(c *gin.Context) {
	feed, err := h.profileService.GetProfileFeed(c.Request.Context(), c.Param("username"), viewerID(c), pageParam(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, feed)
}

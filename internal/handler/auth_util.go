package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"social-feed-api/internal/response"
)

// currentUserID extracts the authenticated user's id from the Gin context.
// Returns false after writing the error response when the middleware did not
// set it.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userUUID, true
}

// viewerID extracts the optional viewer id set by the optional auth
// middleware; nil means an anonymous request
func viewerID(c *gin.Context) *uuid.UUID {
	userID, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userUUID
}

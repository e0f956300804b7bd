package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const loginPath = "/auth/login"

// Auth returns a middleware that validates JWT tokens locally. Requests with
// no credentials at all are redirected to the login endpoint with the
// original path in the next parameter; requests with bad credentials get a
// 401 response.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			redirectToLogin(c)
			return
		}

		userID, err := parseToken(authHeader, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid or expired token",
				},
			})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// OptionalAuth resolves the current user when valid credentials are present
// but lets anonymous requests through untouched. Public pages use it to
// personalize follow state.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			if userID, err := parseToken(authHeader, jwtSecret); err == nil {
				c.Set("user_id", userID)
			}
		}
		c.Next()
	}
}

// parseToken validates a "Bearer <token>" header and returns the user id
// claim
func parseToken(authHeader, jwtSecret string) (uuid.UUID, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return uuid.Nil, jwt.ErrTokenMalformed
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, jwt.ErrTokenSignatureInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	return userID, nil
}

// redirectToLogin sends an anonymous request to the login endpoint with the
// original path preserved in the next parameter
func redirectToLogin(c *gin.Context) {
	next := c.Request.URL.Path
	if c.Request.URL.RawQuery != "" {
		next += "?" + c.Request.URL.RawQuery
	}
	c.Redirect(http.StatusFound, loginPath+"?next="+url.QueryEscape(next))
	c.Abort()
}

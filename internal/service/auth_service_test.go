package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"social-feed-api/internal/domain"
	"social-feed-api/internal/dto"
	"social-feed-api/internal/response"
)

const testJWTSecret = "test-secret"

func TestRegister(t *testing.T) {
	t.Run("creates the account with a hashed password", func(t *testing.T) {
		var created *domain.User
		userRepo := &MockUserRepository{
			CreateFunc: func(ctx context.Context, user *domain.User) error {
				user.ID = uuid.New()
				created = user
				return nil
			},
		}

		svc := NewAuthService(userRepo, testJWTSecret, time.Hour, zap.NewNop())
		resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Username: "leo",
			Email:    "leo@example.com",
			Password: "s3cret-pass",
		})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.True(t, created.IsActive)
		assert.NotEqual(t, "s3cret-pass", created.PasswordHash, "the password must never be stored in clear")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret-pass")))
		assert.Equal(t, "leo", resp.Username)
		assert.Equal(t, "leo@example.com", resp.Email)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		userRepo := &MockUserRepository{
			FindByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
				return &domain.User{ID: uuid.New(), Username: username}, nil
			},
		}

		svc := NewAuthService(userRepo, testJWTSecret, time.Hour, zap.NewNop())
		_, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Username: "leo",
			Email:    "leo@example.com",
			Password: "s3cret-pass",
		})

		var appErr *response.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, response.ErrCodeAlreadyExists, appErr.Code)
	})
}

func TestLogin(t *testing.T) {
	userID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}

	userRepo := &MockUserRepository{
		FindByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			if username != "leo" {
				return nil, gorm.ErrRecordNotFound
			}
			return &domain.User{ID: userID, Username: "leo", PasswordHash: string(hash)}, nil
		},
	}

	t.Run("issues a token carrying the user id", func(t *testing.T) {
		svc := NewAuthService(userRepo, testJWTSecret, time.Hour, zap.NewNop())
		resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "leo", Password: "s3cret-pass"})

		require.NoError(t, err)
		assert.True(t, resp.ExpiresAt.After(time.Now()))

		parsed, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
			return []byte(testJWTSecret), nil
		})
		require.NoError(t, err)
		claims, ok := parsed.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, userID.String(), claims["user_id"])
		assert.Equal(t, "leo", claims["username"])
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		svc := NewAuthService(userRepo, testJWTSecret, time.Hour, zap.NewNop())
		_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "leo", Password: "wrong"})

		var appErr *response.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, response.ErrCodeUnauthorized, appErr.Code)
	})

	t.Run("rejects an unknown username with the same error", func(t *testing.T) {
		svc := NewAuthService(userRepo, testJWTSecret, time.Hour, zap.NewNop())
		_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "s3cret-pass"})

		var appErr *response.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, response.ErrCodeUnauthorized, appErr.Code)
		assert.Equal(t, "Invalid username or password", appErr.Message)
	})
}

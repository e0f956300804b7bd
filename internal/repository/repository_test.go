package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"social-feed-api/internal/domain"
)

// schema creates the tables by hand; sqlite cannot evaluate the Postgres
// uuid defaults the domain tags declare
var schema = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE groups (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		description TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE posts (
		id TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		author_id TEXT NOT NULL,
		group_id TEXT,
		image_url TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE comments (
		id TEXT PRIMARY KEY,
		post_id TEXT NOT NULL,
		author_id TEXT NOT NULL,
		text TEXT NOT NULL,
		created_at DATETIME
	)`,
	`CREATE TABLE follows (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		author_id TEXT NOT NULL,
		created_at DATETIME,
		UNIQUE (user_id, author_id)
	)`,
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")

	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestGroup(t *testing.T, db *gorm.DB, slug string) *domain.Group {
	t.Helper()

	group := &domain.Group{Title: "Group " + slug, Slug: slug}
	group.ID = uuid.New()
	require.NoError(t, db.Create(group).Error)
	return group
}

func createTestPost(t *testing.T, db *gorm.DB, author *domain.User, text string, createdAt time.Time) *domain.Post {
	t.Helper()

	post := &domain.Post{
		ID:        uuid.New(),
		Text:      text,
		AuthorID:  author.ID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func testCtx() context.Context {
	return context.Background()
}

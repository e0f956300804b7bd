package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post represents a published entry. The creation timestamp is immutable
// and indexed; feeds order on it newest-first.
type Post struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Text      string     `gorm:"type:text;not null" json:"text"`
	AuthorID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_posts_author_id" json:"authorId"`
	GroupID   *uuid.UUID `gorm:"type:uuid;index:idx_posts_group_id" json:"groupId,omitempty"`
	ImageURL  *string    `gorm:"type:text" json:"imageUrl,omitempty"`
	CreatedAt time.Time  `gorm:"not null;index:idx_posts_created_at,sort:desc" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"not null" json:"updatedAt"`

	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Group    *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

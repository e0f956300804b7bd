package domain

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge: user receives author's posts in their follow
// feed. The pair is unique at the schema level so concurrent duplicate
// subscribes collapse to a single row, and the CHECK keeps a user from
// following themselves even if a write path forgets to guard it.
type Follow struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_follows_user_id;uniqueIndex:uq_follows_user_author" json:"userId"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index:idx_follows_author_id;uniqueIndex:uq_follows_user_author;check:chk_follows_no_self,user_id <> author_id" json:"authorId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`

	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "follows"
}

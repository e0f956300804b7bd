package dto

import (
	"github.com/google/uuid"
)

// GroupResponse represents a group
type GroupResponse struct {
	GroupID     uuid.UUID `json:"groupId"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
}

// GroupFeedResponse is the group page: the group plus its posts
type GroupFeedResponse struct {
	Group GroupResponse  `json:"group"`
	Posts []PostResponse `json:"posts"`
	Page  Page           `json:"page"`
}

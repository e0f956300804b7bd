package dto

import (
	"time"

	"github.com/google/uuid"
)

// CommentForm carries the raw submitted fields for a new comment
type CommentForm struct {
	Text string
}

// CommentFormDescriptor describes the comment form for an empty render
type CommentFormDescriptor struct {
	Fields map[string]FormField `json:"fields"`
}

// NewCommentFormDescriptor returns the empty comment form
func NewCommentFormDescriptor() CommentFormDescriptor {
	return CommentFormDescriptor{
		Fields: map[string]FormField{
			"text": {Label: "Comment text", HelpText: "Enter the text of the comment", Required: true},
		},
	}
}

// CommentResponse represents a comment on a post view
type CommentResponse struct {
	CommentID uuid.UUID `json:"commentId"`
	PostID    uuid.UUID `json:"postId"`
	Author    AuthorRef `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

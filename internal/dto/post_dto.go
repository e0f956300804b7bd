package dto

import (
	"mime/multipart"
	"time"

	"github.com/google/uuid"
)

// PostForm carries the raw submitted fields for creating or editing a post.
// Text is required; Group may be empty or must name an existing group slug;
// Image, when present, must be a readable image format.
type PostForm struct {
	Text      string
	GroupSlug string
	Image     *multipart.FileHeader
}

// PostFormDescriptor describes the post form for an empty or pre-filled
// render, mirroring the labels and help texts of the original form
type PostFormDescriptor struct {
	Fields map[string]FormField `json:"fields"`
	Values *PostFormValues      `json:"values,omitempty"`
}

// FormField is a single form field descriptor
type FormField struct {
	Label    string `json:"label"`
	HelpText string `json:"helpText"`
	Required bool   `json:"required"`
}

// PostFormValues holds pre-filled values for the edit form
type PostFormValues struct {
	Text      string `json:"text"`
	GroupSlug string `json:"group"`
	ImageURL  string `json:"image,omitempty"`
}

// NewPostFormDescriptor returns the empty new-post form
func NewPostFormDescriptor() PostFormDescriptor {
	return PostFormDescriptor{
		Fields: map[string]FormField{
			"text":  {Label: "New post text", HelpText: "Enter the text of the new post", Required: true},
			"group": {Label: "Group", HelpText: "Pick a group for the new post or leave the field empty", Required: false},
			"image": {Label: "Post image", HelpText: "Upload an image for the post or skip this step", Required: false},
		},
	}
}

// PostResponse represents a post in feed and detail views
type PostResponse struct {
	PostID    uuid.UUID      `json:"postId"`
	Text      string         `json:"text"`
	Author    AuthorRef      `json:"author"`
	Group     *GroupResponse `json:"group,omitempty"`
	ImageURL  *string        `json:"imageUrl,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// AuthorRef identifies a post or comment author
type AuthorRef struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
}

// FeedResponse is one page of a time-ordered post feed
type FeedResponse struct {
	Posts []PostResponse `json:"posts"`
	Page  Page           `json:"page"`
}

// PostDetailResponse is the single-post view: the post, its comments
// oldest-first with authors joined, and the empty comment form
type PostDetailResponse struct {
	Post        PostResponse          `json:"post"`
	Comments    []CommentResponse     `json:"comments"`
	CommentForm CommentFormDescriptor `json:"commentForm"`
	Profile     ProfileResponse       `json:"profile"`
}

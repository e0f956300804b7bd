package dto

import (
	"github.com/google/uuid"
)

// Counters are the three independent profile counts: posts by the profile,
// authors the profile follows (subscriptions) and users following the
// profile (followers)
type Counters struct {
	Posts         int64 `json:"posts"`
	Subscriptions int64 `json:"subscriptions"`
	Followers     int64 `json:"followers"`
}

// ProfileResponse describes one user's profile header
type ProfileResponse struct {
	UserID    uuid.UUID `json:"userId"`
	Username  string    `json:"username"`
	Counters  Counters  `json:"counters"`
	Following bool      `json:"following"`
}

// ProfileFeedResponse is the profile page: header plus the user's posts
type ProfileFeedResponse struct {
	Profile ProfileResponse `json:"profile"`
	Posts   []PostResponse  `json:"posts"`
	Page    Page            `json:"page"`
}

package metrics

// IncrementPostCreated increments the post creation counter
func (m *Metrics) IncrementPostCreated() {
	m.safeExecute("IncrementPostCreated", func() {
		m.PostCreatedTotal.Inc()
	})
}

// IncrementCommentCreated increments the comment creation counter
func (m *Metrics) IncrementCommentCreated() {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentCreatedTotal.Inc()
	})
}

// IncrementFollowCreated increments the follow creation counter
func (m *Metrics) IncrementFollowCreated() {
	m.safeExecute("IncrementFollowCreated", func() {
		m.FollowCreatedTotal.Inc()
	})
}

// SetPostsTotal sets the total posts gauge
func (m *Metrics) SetPostsTotal(count int64) {
	m.safeExecute("SetPostsTotal", func() {
		m.PostsTotal.Set(float64(count))
	})
}

// SetUsersTotal sets the total users gauge
func (m *Metrics) SetUsersTotal(count int64) {
	m.safeExecute("SetUsersTotal", func() {
		m.UsersTotal.Set(float64(count))
	})
}

// SetFollowsTotal sets the total follows gauge
func (m *Metrics) SetFollowsTotal(count int64) {
	m.safeExecute("SetFollowsTotal", func() {
		m.FollowsTotal.Set(float64(count))
	})
}

package metrics

import (
	"time"
)

// RecordImageUpload records one post image upload against the object store
func (m *Metrics) RecordImageUpload(duration time.Duration, err error) {
	m.safeExecute("RecordImageUpload", func() {
		m.ImageUploadDuration.Observe(duration.Seconds())
		m.ImageUploadsTotal.WithLabelValues(uploadResult(err)).Inc()
	})
}

// RecordCacheLookup records an index page cache hit or miss
func (m *Metrics) RecordCacheLookup(hit bool) {
	m.safeExecute("RecordCacheLookup", func() {
		result := "miss"
		if hit {
			result = "hit"
		}
		m.CacheRequestsTotal.WithLabelValues(result).Inc()
	})
}

func uploadResult(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

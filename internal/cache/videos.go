package cache

import (
	"sync"
	"time"

	"github.com/visionhub/console/pkg/visionhub"
)

// VideoCache holds the console's transient snapshot of the full video
// list. Several modules (videos, categories, AI tools) read it; any
// mutation invalidates it so the next read refetches.
type VideoCache struct {
	mu        sync.RWMutex
	videos    []visionhub.Video
	fetchedAt time.Time
	ttl       time.Duration
}

// NewVideoCache constructs a cache whose snapshot goes stale after ttl.
func NewVideoCache(ttl time.Duration) *VideoCache {
	return &VideoCache{ttl: ttl}
}

// Snapshot returns the cached videos and whether they are still fresh.
func (c *VideoCache) Snapshot() ([]visionhub.Video, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.fetchedAt.IsZero() || time.Since(c.fetchedAt) > c.ttl {
		return nil, false
	}
	return c.videos, true
}

// Store replaces the snapshot.
func (c *VideoCache) Store(videos []visionhub.Video) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.videos = videos
	c.fetchedAt = time.Now()
}

// Invalidate marks the snapshot stale.
func (c *VideoCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchedAt = time.Time{}
	c.videos = nil
}

package cache

import (
	"testing"
	"time"

	"github.com/visionhub/console/pkg/visionhub"
)

func TestSnapshotFreshness(t *testing.T) {
	c := NewVideoCache(time.Minute)
	if _, ok := c.Snapshot(); ok {
		t.Fatalf("empty cache must not be fresh")
	}
	c.Store([]visionhub.Video{{ID: 1, Title: "intro"}})
	videos, ok := c.Snapshot()
	if !ok || len(videos) != 1 || videos[0].Title != "intro" {
		t.Fatalf("expected fresh snapshot, got %v ok=%v", videos, ok)
	}
}

func TestSnapshotExpiry(t *testing.T) {
	c := NewVideoCache(50 * time.Millisecond)
	c.Store([]visionhub.Video{{ID: 1}})
	time.Sleep(80 * time.Millisecond)
	if _, ok := c.Snapshot(); ok {
		t.Fatalf("expected snapshot to expire")
	}
}

func TestInvalidate(t *testing.T) {
	c := NewVideoCache(time.Minute)
	c.Store([]visionhub.Video{{ID: 1}})
	c.Invalidate()
	if _, ok := c.Snapshot(); ok {
		t.Fatalf("expected invalidated snapshot to be stale")
	}
}

package handler

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/visionhub/console/internal/bridge"
	"github.com/visionhub/console/internal/config"
	"github.com/visionhub/console/pkg/visionhub"
)

type fakeSessionStore struct {
	live map[string]bool
}

func (f *fakeSessionStore) Create(_ context.Context, _ string) (string, error) {
	id := fmt.Sprintf("s%d", len(f.live)+1)
	f.live[id] = true
	return id, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, id string) error {
	delete(f.live, id)
	return nil
}

func (f *fakeSessionStore) Exists(_ context.Context, id string) (bool, error) {
	return f.live[id], nil
}

func newSweepTestHandler(store *fakeSessionStore) *ConsoleHandler {
	client := visionhub.NewClient("http://backend.invalid")
	cfg := &config.Config{}
	cfg.Session.CookieName = "console_session"
	h := NewConsoleHandler(client, store, cfg)
	h.SetSessionFactory(func(token string) *bridge.Session {
		return bridge.NewSession(client, time.Minute, time.Minute)
	})
	return h
}

// attachSession builds the bridge session a real authenticated request
// would have created.
func attachSession(t *testing.T, h *ConsoleHandler, id string) {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set("session_id", id)
	c.Set("backend_token", "token-"+id)
	if h.sessionFor(c) == nil {
		t.Fatalf("expected a bridge session for %s", id)
	}
}

func TestSweepEvictsSessionsGoneFromStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &fakeSessionStore{live: map[string]bool{"s1": true, "s2": true}}
	h := newSweepTestHandler(store)
	attachSession(t, h, "s1")
	attachSession(t, h, "s2")

	store.live["s1"] = false
	h.Sweep(context.Background())

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions["s1"]; ok {
		t.Fatal("expected the expired session bundle to be evicted")
	}
	if _, ok := h.sessions["s2"]; !ok {
		t.Fatal("expected the live session bundle to survive the sweep")
	}
}

func TestSweepKeepsAllLiveSessions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &fakeSessionStore{live: map[string]bool{"s1": true}}
	h := newSweepTestHandler(store)
	attachSession(t, h, "s1")

	h.Sweep(context.Background())

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.sessions) != 1 {
		t.Fatalf("expected the session map untouched, got %d entries", len(h.sessions))
	}
}

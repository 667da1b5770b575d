package modules_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/visionhub/console/internal/bridge"
	"github.com/visionhub/console/pkg/visionhub"
)

// fakeBackend records every request and serves canned JSON per path.
type fakeBackend struct {
	mu        sync.Mutex
	requests  []string
	responses map[string]string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{responses: map[string]string{}}
}

func (f *fakeBackend) respond(method, path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" "+path] = body
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.requests = append(f.requests, key)
	body, ok := f.responses[key]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		body = `{"success":true}`
	}
	w.Write([]byte(body))
}

func (f *fakeBackend) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, req := range f.requests {
		if req == key {
			n++
		}
	}
	return n
}

func newTestSession(t *testing.T, backend *fakeBackend) *bridge.Session {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	client := visionhub.NewClient(srv.URL)
	return bridge.NewSession(client, time.Minute, time.Minute)
}

func TestUsersDispatchRendersTable(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("GET", "/api/users",
		`{"success":true,"users":[{"username":"admin","role":"admin","created_at":"2024-01-01"}]}`)
	sess := newTestSession(t, backend)

	sess.Registry.Dispatch(context.Background(), "users")

	html := string(sess.Container.HTML())
	if !strings.Contains(html, "admin") {
		t.Fatalf("rendered table missing username, got: %s", html)
	}
	if !strings.Contains(html, "ADMIN") {
		t.Fatalf("rendered table missing uppercased role badge, got: %s", html)
	}
}

func TestCategoriesFailureEnvelopeShowsScopedError(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("GET", "/api/categories", `{"success":false}`)
	sess := newTestSession(t, backend)

	sess.Registry.Dispatch(context.Background(), "categories")

	html := string(sess.Container.HTML())
	if !strings.Contains(html, "Error loading categories") {
		t.Fatalf("expected inline category error, got: %s", html)
	}
}

func TestCategoryDeleteRunsOnlyAfterConfirmation(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("GET", "/api/categories",
		`{"success":true,"categories":[{"id":3,"name":"Tutorials"}]}`)
	backend.respond("GET", "/api/videos", `{"success":true,"videos":[]}`)
	sess := newTestSession(t, backend)
	ctx := context.Background()

	sess.Registry.Dispatch(ctx, "categories")

	form := url.Values{"id": {"3"}}
	sess.Registry.DispatchAction(ctx, "categories", "delete", form)

	token, ok := sess.Surface.PendingConfirm()
	if !ok {
		t.Fatal("expected a pending confirmation after delete action")
	}
	if got := sess.Surface.ConfirmText(); got != "Are you sure you want to delete this category?" {
		t.Fatalf("unexpected confirm text %q", got)
	}
	if n := backend.count("DELETE /api/categories/3"); n != 0 {
		t.Fatalf("delete issued before confirmation, count=%d", n)
	}

	if !sess.Surface.ResolveConfirm(ctx, token, true) {
		t.Fatal("ResolveConfirm rejected a live token")
	}
	if n := backend.count("DELETE /api/categories/3"); n != 1 {
		t.Fatalf("expected exactly one DELETE after confirmation, got %d", n)
	}
	if n := backend.count("GET /api/categories"); n < 2 {
		t.Fatalf("expected a re-render fetch after deletion, got %d list fetches", n)
	}

	var sawSuccess bool
	for _, toast := range sess.Surface.DrainToasts() {
		if toast.Message == "Category deleted successfully" {
			sawSuccess = true
		}
	}
	if !sawSuccess {
		t.Fatal("missing success toast after confirmed deletion")
	}
}

func TestCategoryDeleteDeclinedIssuesNoMutation(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("GET", "/api/categories",
		`{"success":true,"categories":[{"id":3,"name":"Tutorials"}]}`)
	sess := newTestSession(t, backend)
	ctx := context.Background()

	sess.Registry.DispatchAction(ctx, "categories", "delete", url.Values{"id": {"3"}})

	token, ok := sess.Surface.PendingConfirm()
	if !ok {
		t.Fatal("expected a pending confirmation")
	}
	sess.Surface.ResolveConfirm(ctx, token, false)

	if n := backend.count("DELETE /api/categories/3"); n != 0 {
		t.Fatalf("declined confirmation must not mutate, got %d deletes", n)
	}
}

func TestVideoSaveCreatesThenReloadsCatalog(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("GET", "/api/videos", `{"success":true,"videos":[]}`)
	sess := newTestSession(t, backend)

	form := url.Values{
		"title":      {"Intro"},
		"videoUrl":   {"https://example.com/v.mp4"},
		"categoryId": {"2"},
	}
	sess.Registry.DispatchAction(context.Background(), "videos", "save", form)

	if n := backend.count("POST /api/videos"); n != 1 {
		t.Fatalf("expected one create POST, got %d", n)
	}
	if n := backend.count("GET /api/videos"); n < 1 {
		t.Fatal("expected the catalog to be refetched after save")
	}
}

func TestBackupDeleteSurfacesBackendError(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("GET", "/api/backups/status", `{"success":true,"backup":{}}`)
	backend.respond("GET", "/api/backups/list", `{"success":true,"backups":{"backups":[]}}`)
	backend.respond("DELETE", "/api/backups/db_backup.sqlite",
		`{"success":false,"error":"backup file is locked"}`)
	sess := newTestSession(t, backend)
	ctx := context.Background()

	sess.Registry.DispatchAction(ctx, "backup-system", "delete",
		url.Values{"filename": {"db_backup.sqlite"}})

	token, ok := sess.Surface.PendingConfirm()
	if !ok {
		t.Fatal("expected a pending confirmation")
	}
	sess.Surface.ResolveConfirm(ctx, token, true)

	var sawBackendError bool
	for _, toast := range sess.Surface.DrainToasts() {
		if toast.Message == "backup file is locked" {
			sawBackendError = true
		}
	}
	if !sawBackendError {
		t.Fatal("expected the backend error text to surface as the toast")
	}
}

func TestUnknownDispatchTagNamesTheModule(t *testing.T) {
	backend := newFakeBackend()
	sess := newTestSession(t, backend)

	sess.Registry.Dispatch(context.Background(), "audit-trail")

	html := string(sess.Container.HTML())
	if !strings.Contains(html, `Module "audit-trail" not found`) {
		t.Fatalf("expected tag in error block, got: %s", html)
	}
}

func TestAISettingsRenderShowsDatabaseKeySource(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("GET", "/api/settings",
		`{"success":true,"settings":{"siteName":"VisionHub","primaryColor":"#2a9d8f","geminiApiKey":"abc123"}}`)
	backend.respond("GET", "/api/ai/status",
		`{"success":true,"ai":{"initialized":true,"hasApiKey":true,"hasDbApiKey":true,"hasEnvApiKey":false}}`)
	sess := newTestSession(t, backend)

	sess.Registry.Dispatch(context.Background(), "ai-settings")

	html := string(sess.Container.HTML())
	if !strings.Contains(html, "ACTIVE") {
		t.Fatalf("expected active status badge, got: %s", html)
	}
	if !strings.Contains(html, `value="abc123"`) {
		t.Fatalf("expected the database key echoed into the form, got: %s", html)
	}
	if !strings.Contains(html, "Database Storage") {
		t.Fatalf("expected the key source selector, got: %s", html)
	}
}

func TestAISettingsSaveRequiresKeyForDatabaseSource(t *testing.T) {
	backend := newFakeBackend()
	sess := newTestSession(t, backend)
	ctx := context.Background()

	sess.Registry.DispatchAction(ctx, "ai-settings", "save",
		url.Values{"apiKeySource": {"database"}, "geminiApiKey": {"   "}})

	if got := backend.count("POST /api/settings"); got != 0 {
		t.Fatalf("expected no settings write without a key, got %d", got)
	}
	var sawWarning bool
	for _, toast := range sess.Surface.DrainToasts() {
		if toast.Message == "Please enter a valid API key" {
			sawWarning = true
		}
	}
	if !sawWarning {
		t.Fatal("expected the missing-key warning toast")
	}

	sess.Registry.DispatchAction(ctx, "ai-settings", "save",
		url.Values{"apiKeySource": {"database"}, "geminiApiKey": {"abc123"}})

	if got := backend.count("POST /api/settings"); got != 1 {
		t.Fatalf("expected exactly one settings write, got %d", got)
	}
	var sawSuccess bool
	for _, toast := range sess.Surface.DrainToasts() {
		if toast.Message == "AI settings saved successfully" {
			sawSuccess = true
		}
	}
	if !sawSuccess {
		t.Fatal("expected the save success toast")
	}
}

func TestVideoCompressionOptimizeShowsResultAndReloads(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("GET", "/api/video-compression/status",
		`{"success":true,"compression":{"enabled":true,"supportedFormats":["mp4","webm"],"uploadsPath":"/uploads","maxFileSize":"500MB"}}`)
	backend.respond("POST", "/api/video-compression/optimize/7",
		`{"success":true,"optimization":{"originalSize":10485760,"optimizedSize":5242880,"savings":5242880,"compressionRatio":50}}`)
	backend.respond("GET", "/api/videos", `{"success":true,"videos":[]}`)
	sess := newTestSession(t, backend)

	sess.Registry.DispatchAction(context.Background(), "video-compression", "optimize",
		url.Values{"videoId": {"7"}})

	if got := backend.count("POST /api/video-compression/optimize/7"); got != 1 {
		t.Fatalf("expected exactly one optimize call, got %d", got)
	}
	if got := backend.count("GET /api/videos"); got == 0 {
		t.Fatal("expected the catalog to reload after optimizing")
	}
	html := string(sess.Container.HTML())
	if !strings.Contains(html, "Video Optimization Results") {
		t.Fatalf("expected the result panel, got: %s", html)
	}
	if !strings.Contains(html, "10 MB") || !strings.Contains(html, "(50%)") {
		t.Fatalf("expected size and ratio figures, got: %s", html)
	}
}

func TestVideoCompressionBatchRequiresSelection(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("GET", "/api/video-compression/status",
		`{"success":true,"compression":{"enabled":true}}`)
	sess := newTestSession(t, backend)

	sess.Registry.DispatchAction(context.Background(), "video-compression", "batch", url.Values{})

	if got := backend.count("POST /api/video-compression/batch-optimize"); got != 0 {
		t.Fatalf("expected no batch call without a selection, got %d", got)
	}
	var sawWarning bool
	for _, toast := range sess.Surface.DrainToasts() {
		if toast.Message == "Please select at least one video" {
			sawWarning = true
		}
	}
	if !sawWarning {
		t.Fatal("expected the empty-selection warning toast")
	}
}

func TestPermissionsRenderFetchesGroupsAndUsers(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("GET", "/api/permissions",
		`{"success":true,"permissions":{"videos":[{"name":"video.upload","description":"Upload new videos"}]}}`)
	sess := newTestSession(t, backend)

	sess.Registry.Dispatch(context.Background(), "permissions")

	if got := backend.count("GET /api/groups"); got != 1 {
		t.Fatalf("expected one groups fetch alongside the matrix, got %d", got)
	}
	if got := backend.count("GET /api/users"); got != 1 {
		t.Fatalf("expected one users fetch alongside the matrix, got %d", got)
	}
	if html := string(sess.Container.HTML()); !strings.Contains(html, "video.upload") {
		t.Fatalf("expected the permission matrix, got: %s", html)
	}
}

func TestConfirmUnknownTokenResolvesNothing(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("GET", "/api/categories",
		`{"success":true,"categories":[{"id":3,"name":"Tutorials"}]}`)
	sess := newTestSession(t, backend)
	ctx := context.Background()

	sess.Registry.Dispatch(ctx, "categories")
	sess.Registry.DispatchAction(ctx, "categories", "delete", url.Values{"id": {"3"}})

	if sess.Surface.ResolveConfirm(ctx, "not-a-token", true) {
		t.Fatal("expected an unknown token to resolve nothing")
	}
	if got := backend.count("DELETE /api/categories/3"); got != 0 {
		t.Fatalf("expected no deletion from an unknown token, got %d", got)
	}
}

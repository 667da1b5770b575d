package bridge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/visionhub/console/internal/cache"
	"github.com/visionhub/console/internal/console"
	"github.com/visionhub/console/pkg/visionhub"
)

func newTestApp(backendURL string) *App {
	client := visionhub.NewClient(backendURL)
	return NewApp(client, console.NewSurface(time.Minute), console.NewContainer(), cache.NewVideoCache(time.Minute))
}

func TestMapToastKind(t *testing.T) {
	cases := map[string]console.ToastKind{
		"info":    console.KindNeutral,
		"success": console.KindSuccess,
		"error":   console.KindError,
		"danger":  console.KindError,
		"warning": console.KindNeutral,
		"":        console.KindNeutral,
		"bogus":   console.KindNeutral,
	}
	for legacy, want := range cases {
		if got := MapToastKind(legacy); got != want {
			t.Fatalf("MapToastKind(%q) = %q, want %q", legacy, got, want)
		}
	}
}

func TestShowLoadingAsymmetry(t *testing.T) {
	app := newTestApp("http://backend.invalid")

	app.ShowLoading(false, "ignored")
	if got := app.Surface().DrainToasts(); len(got) != 0 {
		t.Fatalf("hide must not emit a toast, got %+v", got)
	}

	app.ShowLoading(true, "Creating database backup...")
	toasts := app.Surface().DrainToasts()
	if len(toasts) != 1 {
		t.Fatalf("expected exactly one toast, got %d", len(toasts))
	}
	if toasts[0].Message != "Creating database backup..." || toasts[0].Kind != console.KindNeutral {
		t.Fatalf("unexpected toast %+v", toasts[0])
	}
}

func TestShowLoadingDefaultMessage(t *testing.T) {
	app := newTestApp("http://backend.invalid")
	app.ShowLoading(true, "")
	toasts := app.Surface().DrainToasts()
	if len(toasts) != 1 || toasts[0].Message != "Loading..." {
		t.Fatalf("expected default loading toast, got %+v", toasts)
	}
}

func TestConfirmationForwardsOnlyTrue(t *testing.T) {
	app := newTestApp("http://backend.invalid")

	calls := 0
	app.ShowConfirmationModal("Delete this category?", func(ctx context.Context) { calls++ })

	if app.Surface().ConfirmText() != "Delete this category?" {
		t.Fatalf("expected custom confirm text, got %q", app.Surface().ConfirmText())
	}

	token, ok := app.Surface().PendingConfirm()
	if !ok {
		t.Fatalf("expected a pending confirmation")
	}
	app.Surface().ResolveConfirm(context.Background(), token, false)
	if calls != 0 {
		t.Fatalf("declined confirmation must not invoke onConfirm")
	}

	app.ShowConfirmationModal("Delete this category?", func(ctx context.Context) { calls++ })
	token, _ = app.Surface().PendingConfirm()
	app.Surface().ResolveConfirm(context.Background(), token, true)
	if calls != 1 {
		t.Fatalf("confirmed outcome must invoke onConfirm once, got %d", calls)
	}
}

func TestLegacyAPIPrefixesAndErrors(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		if r.URL.Path == "/api/users/ghost" {
			http.Error(w, "missing", http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	app := newTestApp(srv.URL)

	var resp visionhub.StatusResponse
	if err := app.API().Get(context.Background(), "/users", &resp); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if gotPath != "/api/users" || gotMethod != http.MethodGet {
		t.Fatalf("expected GET /api/users, got %s %s", gotMethod, gotPath)
	}

	err := app.API().Get(context.Background(), "/users/ghost", &resp)
	if err == nil || err.Error() != "Not Found" {
		t.Fatalf("expected status-text error, got %v", err)
	}
}

func TestVideosCachesSnapshot(t *testing.T) {
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		w.Write([]byte(`{"success":true,"videos":[{"id":1,"title":"intro"}]}`))
	}))
	defer srv.Close()

	app := newTestApp(srv.URL)
	ctx := context.Background()

	if videos := app.Videos(ctx); len(videos) != 1 || videos[0].Title != "intro" {
		t.Fatalf("unexpected videos %+v", videos)
	}
	app.Videos(ctx)
	if fetches != 1 {
		t.Fatalf("expected one backend fetch, got %d", fetches)
	}
}

func TestStarterRunsInitOnceAfterReady(t *testing.T) {
	var s Starter
	ready := make(chan struct{})
	inits := 0

	done := make(chan error, 1)
	go func() {
		done <- s.Run(context.Background(), ready, func() { inits++ })
	}()

	select {
	case <-done:
		t.Fatalf("init ran before readiness signal")
	case <-time.After(20 * time.Millisecond):
	}

	close(ready)
	if err := <-done; err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if err := s.Run(context.Background(), ready, func() { inits++ }); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if inits != 1 {
		t.Fatalf("init must run exactly once, ran %d times", inits)
	}
}

func TestStarterHonorsContextCancel(t *testing.T) {
	var s Starter
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx, make(chan struct{}), func() {}); err == nil {
		t.Fatalf("expected context error")
	}
}

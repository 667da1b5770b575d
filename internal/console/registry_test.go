package console

import (
	"context"
	"strings"
	"testing"
	"time"
)

type stubModule struct {
	container *Container
	rendered  int
	panicMsg  string
}

func (m *stubModule) Render(ctx context.Context) {
	m.rendered++
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	m.container.SetHTML("<p>ok</p>")
}

func TestDispatchRendersRegisteredModule(t *testing.T) {
	c := NewContainer()
	r := NewRegistry(c)
	m := &stubModule{container: c}
	r.Register("users", m)

	r.Dispatch(context.Background(), "users")

	if m.rendered != 1 {
		t.Fatalf("expected one render, got %d", m.rendered)
	}
	if string(c.HTML()) != "<p>ok</p>" {
		t.Fatalf("unexpected container content %q", c.HTML())
	}
}

func TestDispatchUnknownTagShowsDisplayName(t *testing.T) {
	c := NewContainer()
	r := NewRegistry(c)

	r.Dispatch(context.Background(), "backup-system")

	got := string(c.HTML())
	if !strings.Contains(got, "Backup System") {
		t.Fatalf("expected display name in %q", got)
	}
	if !strings.Contains(got, "not found") {
		t.Fatalf("expected not-found message in %q", got)
	}
}

func TestDispatchUnknownTagFallsBackToRawTag(t *testing.T) {
	c := NewContainer()
	r := NewRegistry(c)

	r.Dispatch(context.Background(), "mystery")

	if !strings.Contains(string(c.HTML()), "mystery") {
		t.Fatalf("expected raw tag in %q", c.HTML())
	}
}

func TestDispatchContainsRenderPanic(t *testing.T) {
	c := NewContainer()
	r := NewRegistry(c)
	r.Register("users", &stubModule{container: c, panicMsg: "boom"})

	r.Dispatch(context.Background(), "users")

	got := string(c.HTML())
	if !strings.Contains(got, "Error loading module") || !strings.Contains(got, "boom") {
		t.Fatalf("expected contained panic message, got %q", got)
	}
}

func TestRegisterNilModuleIsTolerated(t *testing.T) {
	r := NewRegistry(NewContainer())
	r.Register("users", nil)
	if got := r.GetModule("users"); got != nil {
		t.Fatalf("expected nil module, got %v", got)
	}
}

func TestSurfaceConfirmLifecycle(t *testing.T) {
	s := NewSurface(time.Minute)

	var gotConfirmed *bool
	token := s.ShowConfirm(func(_ context.Context, confirmed bool) {
		gotConfirmed = &confirmed
	})

	if pending, ok := s.PendingConfirm(); !ok || pending != token {
		t.Fatalf("expected pending token %q, got %q ok=%v", token, pending, ok)
	}
	if !s.ResolveConfirm(context.Background(), token, false) {
		t.Fatalf("expected resolution to succeed")
	}
	if gotConfirmed == nil || *gotConfirmed {
		t.Fatalf("expected callback invoked with false")
	}
	// Second resolution of the same token is a no-op.
	gotConfirmed = nil
	if s.ResolveConfirm(context.Background(), token, true) {
		t.Fatalf("expected second resolution to fail")
	}
	if gotConfirmed != nil {
		t.Fatalf("callback must not run twice")
	}
}

func TestSurfaceConfirmTextResetsAfterResolve(t *testing.T) {
	s := NewSurface(time.Minute)
	s.SetConfirmText("Delete backup \"x.db\"?")
	token := s.ShowConfirm(func(context.Context, bool) {})

	if s.ConfirmText() != "Delete backup \"x.db\"?" {
		t.Fatalf("unexpected confirm text %q", s.ConfirmText())
	}
	s.ResolveConfirm(context.Background(), token, true)
	if s.ConfirmText() != DefaultConfirmText {
		t.Fatalf("expected confirm text reset, got %q", s.ConfirmText())
	}
}

func TestSurfaceSweepExpired(t *testing.T) {
	s := NewSurface(-time.Second)
	s.ShowConfirm(func(context.Context, bool) {})
	s.SweepExpired()
	if _, ok := s.PendingConfirm(); ok {
		t.Fatalf("expected expired confirm to be swept")
	}
}

func TestSurfaceToastDrain(t *testing.T) {
	s := NewSurface(time.Minute)
	s.PushToast("saved", KindSuccess)
	s.PushToast("oops", KindError)

	toasts := s.DrainToasts()
	if len(toasts) != 2 || toasts[0].Message != "saved" || toasts[1].Kind != KindError {
		t.Fatalf("unexpected toasts %+v", toasts)
	}
	if len(s.DrainToasts()) != 0 {
		t.Fatalf("expected drained queue to be empty")
	}
}

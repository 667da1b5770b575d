package console

import (
	"context"
	"html/template"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ToastKind is the console's toast palette.
type ToastKind string

const (
	KindNeutral ToastKind = "neutral"
	KindSuccess ToastKind = "success"
	KindError   ToastKind = "error"
)

// Toast is one queued notification.
type Toast struct {
	Message string
	Kind    ToastKind
}

// DefaultConfirmText is the confirm modal's built-in copy. Callers may
// override it per prompt via SetConfirmText.
const DefaultConfirmText = "Are you sure you want to delete?"

// ConfirmFunc receives the confirmation outcome. It runs with the context
// of the request that resolved the confirmation, not the one that opened it.
type ConfirmFunc func(ctx context.Context, confirmed bool)

type pendingConfirm struct {
	fn        ConfirmFunc
	expiresAt time.Time
}

// Surface owns the operator-facing notification primitives: queued toasts,
// a generic modal, and the confirm modal with its pending-outcome registry.
// One Surface exists per operator session.
type Surface struct {
	mu          sync.Mutex
	toasts      []Toast
	modal       template.HTML
	modalOpen   bool
	confirmText string
	confirms    map[string]pendingConfirm
	confirmTTL  time.Duration
}

// NewSurface constructs a Surface whose pending confirmations expire after
// ttl.
func NewSurface(ttl time.Duration) *Surface {
	return &Surface{
		confirmText: DefaultConfirmText,
		confirms:    make(map[string]pendingConfirm),
		confirmTTL:  ttl,
	}
}

// PushToast queues a toast for the next page render.
func (s *Surface) PushToast(message string, kind ToastKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toasts = append(s.toasts, Toast{Message: message, Kind: kind})
}

// DrainToasts returns and clears the queued toasts.
func (s *Surface) DrainToasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.toasts
	s.toasts = nil
	return out
}

// ShowModal opens the generic modal with the given fragment.
func (s *Surface) ShowModal(html template.HTML) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = html
	s.modalOpen = true
}

// HideModal closes the generic modal.
func (s *Surface) HideModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = ""
	s.modalOpen = false
}

// Modal returns the current modal fragment and whether it is open.
func (s *Surface) Modal() (template.HTML, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modal, s.modalOpen
}

// SetConfirmText overrides the confirm modal copy for the next prompt.
func (s *Surface) SetConfirmText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmText = text
}

// ConfirmText returns the current confirm modal copy.
func (s *Surface) ConfirmText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmText
}

// ShowConfirm parks fn under a fresh token and returns the token. The
// rendered confirm modal posts the token back with the operator's choice;
// ResolveConfirm then invokes fn exactly once.
func (s *Surface) ShowConfirm(fn ConfirmFunc) string {
	token := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirms[token] = pendingConfirm{fn: fn, expiresAt: time.Now().Add(s.confirmTTL)}
	return token
}

// PendingConfirm reports whether a confirmation is awaiting resolution and
// returns its token for rendering.
func (s *Surface) PendingConfirm() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token := range s.confirms {
		return token, true
	}
	return "", false
}

// ResolveConfirm invokes the parked callback with the operator's choice and
// removes it. Unknown or expired tokens are a logged no-op.
func (s *Surface) ResolveConfirm(ctx context.Context, token string, confirmed bool) bool {
	s.mu.Lock()
	pending, ok := s.confirms[token]
	if ok {
		delete(s.confirms, token)
	}
	s.confirmText = DefaultConfirmText
	s.mu.Unlock()

	if !ok || time.Now().After(pending.expiresAt) {
		log.Warn().Str("token", token).Msg("Confirmation token unknown or expired")
		return false
	}
	pending.fn(ctx, confirmed)
	return true
}

// SweepExpired drops pending confirmations past their deadline.
func (s *Surface) SweepExpired() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, pending := range s.confirms {
		if now.After(pending.expiresAt) {
			delete(s.confirms, token)
		}
	}
}

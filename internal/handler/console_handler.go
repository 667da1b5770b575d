package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/visionhub/console/internal/bridge"
	"github.com/visionhub/console/internal/config"
	"github.com/visionhub/console/internal/console"
	"github.com/visionhub/console/internal/middleware"
	"github.com/visionhub/console/internal/observability/metrics"
	"github.com/visionhub/console/pkg/visionhub"
)

// SessionStore is the slice of the session store the handler needs.
type SessionStore interface {
	Create(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

// ConsoleHandler serves the operator console: login against the VisionHub
// backend, one bridge session per authenticated operator, and the
// dispatch/action/confirm routes the modules hang off.
type ConsoleHandler struct {
	client       *visionhub.Client
	store        SessionStore
	cookieName   string
	cookieSecure bool
	limiter      *middleware.FailedLoginRateLimiter

	mu       sync.Mutex
	sessions map[string]*bridge.Session
	factory  func(token string) *bridge.Session
}

func NewConsoleHandler(client *visionhub.Client, store SessionStore, cfg *config.Config) *ConsoleHandler {
	return &ConsoleHandler{
		client:       client,
		store:        store,
		cookieName:   cfg.Session.CookieName,
		cookieSecure: cfg.Session.CookieSecure,
		limiter:      middleware.NewFailedLoginRateLimiter(),
		sessions:     make(map[string]*bridge.Session),
	}
}

// SetSessionFactory installs the bridge session constructor. Console pages
// answer 503 until the bridge starter has called this.
func (h *ConsoleHandler) SetSessionFactory(factory func(token string) *bridge.Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.factory = factory
}

// sessionFor returns the bridge session for the authenticated operator,
// creating it on first use with the operator's backend token.
func (h *ConsoleHandler) sessionFor(c *gin.Context) *bridge.Session {
	id := middleware.GetSessionID(c)

	h.mu.Lock()
	defer h.mu.Unlock()
	if sess, ok := h.sessions[id]; ok {
		return sess
	}
	if h.factory == nil {
		return nil
	}
	sess := h.factory(middleware.GetBackendToken(c))
	h.sessions[id] = sess
	return sess
}

func (h *ConsoleHandler) dropSession(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
}

// Sweep expires stale confirmation tokens across all live sessions and
// evicts bridge sessions whose store entry has lapsed, so a session that
// times out without an explicit logout does not linger in memory. Called
// periodically by the sweep worker.
func (h *ConsoleHandler) Sweep(ctx context.Context) {
	h.mu.Lock()
	snapshot := make(map[string]*bridge.Session, len(h.sessions))
	for id, sess := range h.sessions {
		snapshot[id] = sess
	}
	h.mu.Unlock()

	for id, sess := range snapshot {
		sess.Surface.SweepExpired()

		live, err := h.store.Exists(ctx, id)
		if err != nil {
			log.Error().Err(err).Msg("Session liveness check failed")
			continue
		}
		if !live {
			h.dropSession(id)
			metrics.DecrementSessions()
		}
	}
}

// LoginPage renders the sign-in form.
func (h *ConsoleHandler) LoginPage(c *gin.Context) {
	h.renderLogin(c, http.StatusOK, "")
}

// Login authenticates against the backend, stores the issued token in the
// session store and sets the session cookie. Failed attempts are rate
// limited per IP.
func (h *ConsoleHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	var resp visionhub.LoginResponse
	err := h.client.DoJSON(c.Request.Context(), http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	if err != nil || !resp.Success {
		if err != nil {
			log.Warn().Err(err).Str("username", username).Msg("Login request failed")
		}
		if !h.limiter.Allow(c.ClientIP()) {
			h.renderLogin(c, http.StatusTooManyRequests, "Too many failed attempts. Please try again later.")
			return
		}
		h.renderLogin(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	id, err := h.store.Create(c.Request.Context(), resp.Token)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create session")
		h.renderLogin(c, http.StatusInternalServerError, "Unable to sign in right now. Please try again.")
		return
	}

	c.SetCookie(h.cookieName, id, 0, "/", "", h.cookieSecure, true)
	metrics.IncrementSessions()
	log.Info().Str("username", username).Msg("Operator signed in")
	c.Redirect(http.StatusSeeOther, "/admin")
}

// Logout tears down the server-side session and clears the cookie.
func (h *ConsoleHandler) Logout(c *gin.Context) {
	id := middleware.GetSessionID(c)
	if id == "" {
		id, _ = c.Cookie(h.cookieName)
	}
	if id != "" {
		if err := h.store.Delete(c.Request.Context(), id); err != nil {
			log.Error().Err(err).Msg("Failed to delete session")
		}
		h.dropSession(id)
		metrics.DecrementSessions()
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

// AdminRoot sends the operator to the default module.
func (h *ConsoleHandler) AdminRoot(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/admin/users")
}

// ModulePage dispatches the tagged module and renders the console shell
// around whatever it put in the container.
func (h *ConsoleHandler) ModulePage(c *gin.Context) {
	sess := h.sessionFor(c)
	if sess == nil {
		c.String(http.StatusServiceUnavailable, "Console is starting up, please retry")
		return
	}
	tag := c.Param("tag")
	metrics.ObserveDispatch(tag)
	sess.Registry.Dispatch(c.Request.Context(), tag)
	h.renderShell(c, sess, tag)
}

// ModuleAction forwards a form post to the module's action handler, then
// redirects back to the module page so a refresh cannot replay it.
func (h *ConsoleHandler) ModuleAction(c *gin.Context) {
	sess := h.sessionFor(c)
	if sess == nil {
		c.String(http.StatusServiceUnavailable, "Console is starting up, please retry")
		return
	}
	tag := c.Param("tag")
	action := c.Param("action")
	if err := c.Request.ParseForm(); err != nil {
		log.Warn().Err(err).Str("tag", tag).Str("action", action).Msg("Malformed action form")
	}
	metrics.ObserveDispatch(tag)
	sess.Registry.DispatchAction(c.Request.Context(), tag, action, c.Request.PostForm)
	c.Redirect(http.StatusSeeOther, "/admin/"+tag)
}

// ModuleConfirm resolves a pending confirmation token. Unknown or expired
// tokens resolve to nothing; the redirect happens either way.
func (h *ConsoleHandler) ModuleConfirm(c *gin.Context) {
	sess := h.sessionFor(c)
	if sess == nil {
		c.String(http.StatusServiceUnavailable, "Console is starting up, please retry")
		return
	}
	tag := c.Param("tag")
	token := c.PostForm("token")
	confirmed := c.PostForm("confirmed") == "true"
	// An unknown or expired token resolves to nothing; the Surface logs it.
	sess.Surface.ResolveConfirm(c.Request.Context(), token, confirmed)
	c.Redirect(http.StatusSeeOther, "/admin/"+tag)
}

func (h *ConsoleHandler) renderShell(c *gin.Context, sess *bridge.Session, tag string) {
	modal, modalOpen := sess.Surface.Modal()
	confirmToken, hasConfirm := sess.Surface.PendingConfirm()

	data := pageData{
		Title:        console.DisplayName(tag),
		Operator:     middleware.GetOperator(c),
		Nav:          buildNav(tag),
		ActiveTag:    tag,
		Content:      sess.Container.HTML(),
		Toasts:       sess.Surface.DrainToasts(),
		Modal:        modal,
		ModalOpen:    modalOpen,
		ConfirmToken: confirmToken,
		ConfirmText:  sess.Surface.ConfirmText(),
		HasConfirm:   hasConfirm,
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := shellTmpl.Execute(c.Writer, data); err != nil {
		log.Error().Err(err).Str("tag", tag).Msg("Failed to render console shell")
	}
}

func (h *ConsoleHandler) renderLogin(c *gin.Context, status int, errMsg string) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := loginTmpl.Execute(c.Writer, struct{ Error string }{Error: errMsg}); err != nil {
		log.Error().Err(err).Msg("Failed to render login page")
	}
}

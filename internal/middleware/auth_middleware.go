package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/visionhub/console/internal/session"
)

// AuthMiddleware resolves the session cookie to a backend bearer token.
// Requests without a live session are redirected to the login page.
type AuthMiddleware struct {
	store      *session.Store
	cookieName string
}

// NewAuthMiddleware constructs a new AuthMiddleware.
func NewAuthMiddleware(store *session.Store, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{store: store, cookieName: cookieName}
}

// Handle returns a Gin middleware function that enforces a live session.
func (m *AuthMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(m.cookieName)
		if err != nil || sessionID == "" {
			m.redirectToLogin(c)
			return
		}

		token, err := m.store.Token(c.Request.Context(), sessionID)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				log.Error().Err(err).Msg("Session lookup failed")
			}
			m.redirectToLogin(c)
			return
		}

		// The backend signed the token; the console only reads its claims
		// to drop sessions whose token already lapsed and to label the
		// operator in the shell.
		claims, expired := inspectToken(token)
		if expired {
			_ = m.store.Delete(c.Request.Context(), sessionID)
			m.redirectToLogin(c)
			return
		}

		c.Set("session_id", sessionID)
		c.Set("backend_token", token)
		if username, ok := claims["username"].(string); ok {
			c.Set("operator", username)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

// GetBackendToken returns the backend bearer token from context.
func GetBackendToken(c *gin.Context) string {
	return c.GetString("backend_token")
}

// GetSessionID returns the session ID from context.
func GetSessionID(c *gin.Context) string {
	return c.GetString("session_id")
}

// GetOperator returns the operator username from context.
func GetOperator(c *gin.Context) string {
	return c.GetString("operator")
}

// inspectToken parses the JWT without verifying its signature and returns
// its claims plus whether the expiry has passed. Unparseable tokens count
// as expired.
func inspectToken(token string) (jwt.MapClaims, bool) {
	claims := jwt.MapClaims{}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return nil, true
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return claims, false
	}
	return claims, exp.Before(time.Now())
}

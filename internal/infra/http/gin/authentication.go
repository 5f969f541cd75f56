package ginserver

import (
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	authsvc "stayhub/internal/app/services/auth"
)

const (
	accessCookieName  = "access_token"
	refreshCookieName = "refresh_token"

	principalContextKey = "stayhub.principal"
)

type principal struct {
	ID    string
	Email string
	Name  string
}

// Cookies writes and clears the HTTP-only auth cookie pair.
type Cookies struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (w Cookies) Write(c *gin.Context, pair authsvc.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookieName, pair.Access, int(w.accessTTL().Seconds()), "/", "", w.Secure, true)
	c.SetCookie(refreshCookieName, pair.Refresh, int(w.refreshTTL().Seconds()), "/", "", w.Secure, true)
}

func (w Cookies) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookieName, "", -1, "/", "", w.Secure, true)
	c.SetCookie(refreshCookieName, "", -1, "/", "", w.Secure, true)
}

func (w Cookies) accessTTL() time.Duration {
	if w.AccessTTL > 0 {
		return w.AccessTTL
	}
	return 15 * time.Minute
}

func (w Cookies) refreshTTL() time.Duration {
	if w.RefreshTTL > 0 {
		return w.RefreshTTL
	}
	return 7 * 24 * time.Hour
}

// AuthMiddleware resolves the current user from the access cookie. An expired
// access token is silently reissued from the refresh cookie; requests without
// valid cookies pass through anonymously and are stopped at requireUser.
type AuthMiddleware struct {
	Service *authsvc.Service
	Cookies Cookies
	Logger  *slog.Logger
}

func (m AuthMiddleware) Handle(c *gin.Context) {
	if m.Service == nil {
		c.Next()
		return
	}
	if access, err := c.Cookie(accessCookieName); err == nil && access != "" {
		if user, err := m.Service.ResolveAccess(c.Request.Context(), access); err == nil {
			setPrincipal(c, principal{ID: string(user.ID), Email: user.Email, Name: user.Name})
			c.Next()
			return
		}
	}
	refresh, err := c.Cookie(refreshCookieName)
	if err != nil || refresh == "" {
		c.Next()
		return
	}
	result, err := m.Service.Refresh(c.Request.Context(), refresh)
	if err != nil {
		if m.Logger != nil {
			m.Logger.Debug("token refresh failed", "error", err)
		}
		c.Next()
		return
	}
	m.Cookies.Write(c, result.Tokens)
	setPrincipal(c, principal{ID: string(result.User.ID), Email: result.User.Email, Name: result.User.Name})
	c.Next()
}

func setPrincipal(c *gin.Context, p principal) {
	c.Set(principalContextKey, p)
}

func currentPrincipal(c *gin.Context) (principal, bool) {
	val, exists := c.Get(principalContextKey)
	if !exists {
		return principal{}, false
	}
	p, ok := val.(principal)
	return p, ok
}

func requireUser(c *gin.Context) (principal, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth required"})
		return principal{}, false
	}
	return p, true
}

// Package http wires the gin router: session resolution, the access guards,
// and the route table for the site.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oumaimabzd/recipe-project/internal/models"
	"github.com/oumaimabzd/recipe-project/internal/session"
	log "github.com/sirupsen/logrus"
)

// sessionContextKey is the gin context key holding the resolved session.
const sessionContextKey = "session"

// SessionMiddleware resolves the session cookie once per request and stores
// the result in the request context. Anonymous requests proceed with no
// session value set.
func SessionMiddleware(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, errCookie := c.Cookie(session.CookieName)
		if errCookie != nil {
			c.Next()
			return
		}
		sess, errResolve := sessions.Resolve(c.Request.Context(), token)
		if errResolve != nil {
			log.WithError(errResolve).Error("resolve session")
			c.String(http.StatusInternalServerError, "Database error.")
			c.Abort()
			return
		}
		if sess != nil {
			c.Set(sessionContextKey, sess)
		}
		c.Next()
	}
}

// CurrentSession returns the resolved session, or nil for anonymous requests.
func CurrentSession(c *gin.Context) *models.Session {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	sess, ok := value.(*models.Session)
	if !ok {
		return nil
	}
	return sess
}

// RequireSession rejects anonymous requests with 401 and the login view.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) == nil {
			renderLoginReject(c, http.StatusUnauthorized, "Please log in to continue.")
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests without an admin session with 403 and the
// login view. The session presence check runs first; a tampered context
// cannot reach the admin check without a live session.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil || !sess.IsAdmin {
			renderLoginReject(c, http.StatusForbidden, "Admin access required.")
			return
		}
		c.Next()
	}
}

// renderLoginReject aborts the request with the login view and a generic
// message; it never details which check failed beyond the message text.
func renderLoginReject(c *gin.Context, status int, message string) {
	c.HTML(status, "login.html", gin.H{
		"title":   "Login",
		"heading": "Log in",
		"error":   message,
		"session": CurrentSession(c),
	})
	c.Abort()
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oumaimabzd/recipe-project/internal/accounts"
	"github.com/oumaimabzd/recipe-project/internal/session"
	log "github.com/sirupsen/logrus"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	accounts *accounts.Store
	sessions *session.Manager
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(accounts *accounts.Store, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions}
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", viewData(c, gin.H{
		"title":   "Login Form",
		"heading": "Log in",
	}))
}

// Login verifies the submitted credentials and starts a session. Unknown
// username and wrong password render the same generic message, with the
// submitted username echoed back into the form.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("un")
	password := c.PostForm("pw")

	user, errVerify := h.accounts.Verify(c.Request.Context(), username, password)
	if errVerify != nil {
		if errors.Is(errVerify, accounts.ErrInvalidCredentials) {
			c.HTML(http.StatusOK, "login.html", viewData(c, gin.H{
				"title":   "Login Form",
				"heading": "Log in",
				"error":   "Wrong Username or Password",
				"un":      username,
			}))
			return
		}
		log.WithError(errVerify).Error("login lookup failed")
		c.String(http.StatusInternalServerError, "Database error.")
		return
	}

	_, token, errStart := h.sessions.Start(c.Request.Context(), user)
	if errStart != nil {
		log.WithError(errStart).Error("start session failed")
		c.String(http.StatusInternalServerError, "Database error.")
		return
	}

	maxAge := int(h.sessions.TTL().Seconds())
	c.SetCookie(session.CookieName, token, maxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// Logout destroys the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess := currentSession(c); sess != nil {
		if errDestroy := h.sessions.Destroy(c.Request.Context(), sess.ID); errDestroy != nil {
			log.WithError(errDestroy).Warn("destroy session")
		}
	}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// Package handlers contains the gin handlers behind the site's routes.
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/oumaimabzd/recipe-project/internal/models"
)

// currentSession reads the session placed in the context by the session
// middleware; nil means anonymous.
func currentSession(c *gin.Context) *models.Session {
	value, ok := c.Get("session")
	if !ok {
		return nil
	}
	sess, ok := value.(*models.Session)
	if !ok {
		return nil
	}
	return sess
}

// viewData merges the per-request basics every template expects into the
// handler-specific fields.
func viewData(c *gin.Context, data gin.H) gin.H {
	out := gin.H{"session": currentSession(c)}
	for key, value := range data {
		out[key] = value
	}
	return out
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oumaimabzd/recipe-project/internal/settings"
)

// PageHandler renders the static site pages.
type PageHandler struct {
	site settings.Site
}

// NewPageHandler constructs a PageHandler.
func NewPageHandler(site settings.Site) *PageHandler {
	return &PageHandler{site: site}
}

// Home renders the landing page.
func (h *PageHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", viewData(c, gin.H{
		"title":     "Home",
		"siteTitle": h.site.Title,
	}))
}

// About renders the about page.
func (h *PageHandler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", viewData(c, gin.H{
		"title":     "About",
		"siteTitle": h.site.Title,
	}))
}

// Contact renders the contact page.
func (h *PageHandler) Contact(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", viewData(c, gin.H{
		"title":     "Contact",
		"siteTitle": h.site.Title,
	}))
}

// NotFound renders the 404 page for unknown routes.
func (h *PageHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", viewData(c, gin.H{
		"title":     "Not found",
		"siteTitle": h.site.Title,
	}))
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oumaimabzd/recipe-project/internal/catalog"
	"github.com/oumaimabzd/recipe-project/internal/settings"
	log "github.com/sirupsen/logrus"
)

// CatalogHandler renders the browse pages.
type CatalogHandler struct {
	catalog *catalog.Store
	site    settings.Site
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(store *catalog.Store, site settings.Site) *CatalogHandler {
	return &CatalogHandler{catalog: store, site: site}
}

// Categories lists every category with its newest recipe.
func (h *CatalogHandler) Categories(c *gin.Context) {
	listings, errList := h.catalog.Categories(c.Request.Context())
	if errList != nil {
		log.WithError(errList).Error("load categories")
		c.String(http.StatusInternalServerError, "Error loading categories.")
		return
	}
	c.HTML(http.StatusOK, "categories.html", viewData(c, gin.H{
		"title":      "Categories",
		"categories": listings,
	}))
}

// Recipes renders one page of the recipe list.
func (h *CatalogHandler) Recipes(c *gin.Context) {
	page, errParse := strconv.Atoi(c.Query("page"))
	if errParse != nil || page < 1 {
		page = 1
	}

	result, errPage := h.catalog.RecipesPage(c.Request.Context(), page, h.site.RecipesPerPage)
	if errPage != nil {
		log.WithError(errPage).Error("load recipes page")
		c.String(http.StatusInternalServerError, "Error loading recipes.")
		return
	}
	c.HTML(http.StatusOK, "recipes.html", viewData(c, gin.H{
		"title":      "Recipes",
		"recipes":    result.Recipes,
		"pagination": result.Pagination,
	}))
}

// Detail renders one recipe with its ingredients and image.
func (h *CatalogHandler) Detail(c *gin.Context) {
	id, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.HTML(http.StatusNotFound, "404.html", viewData(c, gin.H{"title": "Not found"}))
		return
	}

	detail, errLoad := h.catalog.RecipeByID(c.Request.Context(), id)
	if errLoad != nil {
		if errors.Is(errLoad, catalog.ErrNotFound) {
			c.HTML(http.StatusNotFound, "404.html", viewData(c, gin.H{"title": "Not found"}))
			return
		}
		log.WithError(errLoad).Error("load recipe detail")
		c.String(http.StatusInternalServerError, "Error loading recipe.")
		return
	}

	c.HTML(http.StatusOK, "detail.html", viewData(c, gin.H{
		"title":            detail.Recipe.Title,
		"recipe":           detail.Recipe,
		"category":         detail.CategoryName,
		"ingredients":      detail.Ingredients,
		"image":            detail.Image,
		"instructionLines": detail.InstructionLines,
		"cacheBuster":      time.Now().UnixMilli(),
	}))
}

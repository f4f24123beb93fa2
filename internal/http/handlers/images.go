package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oumaimabzd/recipe-project/internal/images"
	log "github.com/sirupsen/logrus"
)

// ImageHandler handles image upload, replacement, and deletion for a recipe.
type ImageHandler struct {
	images *images.Manager
}

// NewImageHandler constructs an ImageHandler.
func NewImageHandler(manager *images.Manager) *ImageHandler {
	return &ImageHandler{images: manager}
}

// Upload accepts the multipart "image" field and stores or replaces the
// recipe's image, then redirects back to the detail page.
func (h *ImageHandler) Upload(c *gin.Context) {
	recipeID, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.String(http.StatusNotFound, "Unknown recipe.")
		return
	}

	file, errFile := c.FormFile("image")
	if errFile != nil {
		c.String(http.StatusBadRequest, "Please choose a PNG or JPG image.")
		return
	}

	_, errAccept := h.images.Accept(c.Request.Context(), recipeID, file)
	if errAccept != nil {
		switch {
		case errors.Is(errAccept, images.ErrUnsupportedType):
			c.String(http.StatusBadRequest, "Only PNG or JPG allowed")
		case errors.Is(errAccept, images.ErrTooLarge):
			c.String(http.StatusBadRequest, "Image is too large (max 5 MB).")
		default:
			log.WithError(errAccept).Error("store image")
			c.String(http.StatusInternalServerError, "Error saving image.")
		}
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/item/%d", recipeID))
}

// Delete removes the recipe's image and redirects back to the detail page.
// Deleting when no image exists is a no-op.
func (h *ImageHandler) Delete(c *gin.Context) {
	recipeID, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.String(http.StatusNotFound, "Unknown recipe.")
		return
	}

	if errRemove := h.images.Remove(c.Request.Context(), recipeID); errRemove != nil {
		log.WithError(errRemove).Error("delete image")
		c.String(http.StatusInternalServerError, "Error deleting image.")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/item/%d", recipeID))
}
